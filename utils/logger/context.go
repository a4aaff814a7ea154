package logger

import (
	"context"
	"log/slog"
)

type contextKey string

// RequestIDKey carries the request ID through a request's context.
const RequestIDKey contextKey = "request_id"

// WithRequestID returns a logger annotated with the request ID found in ctx,
// or the base logger when none is present.
func WithRequestID(ctx context.Context, base *slog.Logger) *slog.Logger {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		return base.With("request_id", requestID)
	}
	return base
}
