package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GITHUB_TOKEN", "test-token")
	t.Setenv("GITHUB_REPO", "someone/news-data")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ADMIN_PASSWORD", "hunter2")
}

func TestNewConfig_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIBase)
	assert.Equal(t, 3, cfg.GitHub.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.GitHub.PostWriteDelay)
	assert.Equal(t, 10, cfg.GitHub.QuotaThreshold)
	assert.Equal(t, "gemini-pro", cfg.Gemini.Model)
	assert.Equal(t, 2*time.Second, cfg.Gemini.BackoffBase)
	assert.Equal(t, 10*time.Second, cfg.Gemini.BackoffCap)
	assert.Equal(t, 500*time.Millisecond, cfg.Gemini.ItemDelay)
	assert.Equal(t, 24, cfg.Collect.MaxAgeHours)
	assert.Equal(t, 30, cfg.Collect.DaysToKeep)
	assert.Equal(t, 30, cfg.Collect.CandidateLimit)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "8088")
	t.Setenv("COLLECT_MAX_AGE_HOURS", "48")
	t.Setenv("GEMINI_ITEM_DELAY", "50ms")
	t.Setenv("GITHUB_API_BASE", "http://localhost:1234")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, 48, cfg.Collect.MaxAgeHours)
	assert.Equal(t, 50*time.Millisecond, cfg.Gemini.ItemDelay)
	assert.Equal(t, "http://localhost:1234", cfg.GitHub.APIBase)
}

func TestNewConfig_TokenSecretFallsBackToPassword(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Admin.TokenSecret)

	t.Setenv("ADMIN_TOKEN_SECRET", "separate-secret")
	cfg, err = NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "separate-secret", cfg.Admin.TokenSecret)
}

func TestNewConfig_MissingRequiredSecrets(t *testing.T) {
	tests := []struct {
		name    string
		unset   string
		wantMsg string
	}{
		{"missing_github_token", "GITHUB_TOKEN", "GITHUB_TOKEN"},
		{"missing_repo", "GITHUB_REPO", "GITHUB_REPO"},
		{"missing_gemini_key", "GEMINI_API_KEY", "GEMINI_API_KEY"},
		{"missing_admin_password", "ADMIN_PASSWORD", "ADMIN_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.unset, "")

			_, err := NewConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNewConfig_InvalidValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "not-a-number")

	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_InvalidDuration(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("GITHUB_CONFLICT_DELAY", "soon")

	_, err := NewConfig()
	assert.Error(t, err)
}
