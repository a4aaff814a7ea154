package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want string
	}{
		{
			name: "with_cause",
			err:  ConflictError("update conflict", fmt.Errorf("sha mismatch"), nil),
			want: "CONFLICT_ERROR: update conflict (caused by: sha mismatch)",
		},
		{
			name: "without_cause",
			err:  ValidationError("missing url", nil),
			want: "VALIDATION_ERROR: missing url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := ExternalAPIError("api failed", cause, nil)

	assert.True(t, stderrors.Is(err, cause))

	var appErr *AppError
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, ErrCodeExternalAPI, appErr.Code)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, ErrCodeRateLimit, CodeOf(RateLimitError("limited", nil, nil)))
	assert.Equal(t, ErrCodeNotFound, CodeOf(fmt.Errorf("wrapped: %w", NotFoundError("gone", nil))))
	assert.Equal(t, ErrCodeUnknown, CodeOf(fmt.Errorf("plain error")))
}

func TestLogError(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	LogError(log, StorageError("write failed", fmt.Errorf("sha mismatch"),
		map[string]interface{}{"path": "news_data.json"}), "persist")

	out := buf.String()
	assert.Contains(t, out, "application error")
	assert.Contains(t, out, "operation=persist")
	assert.Contains(t, out, string(ErrCodeStorage))
	assert.Contains(t, out, "sha mismatch")
	assert.Contains(t, out, "news_data.json")

	buf.Reset()
	LogError(log, fmt.Errorf("plain failure"), "collect")
	assert.Contains(t, buf.String(), "unexpected error")

	// Nil logger and nil error are both no-ops.
	LogError(nil, fmt.Errorf("x"), "op")
	buf.Reset()
	LogError(log, nil, "op")
	assert.Empty(t, buf.String())
}
