package middleware

import (
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/utils/logger"
)

func LoggingMiddleware(baseLogger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			// Health checks are polled; keep them out of the log.
			if req.URL.Path == "/v1/health" {
				return next(c)
			}

			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			res := c.Response()
			log := logger.WithRequestID(req.Context(), baseLogger)

			attrs := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"duration_ms", duration.Milliseconds(),
				"remote_addr", c.RealIP(),
			}
			switch {
			case res.Status >= 500:
				log.Error("request completed", attrs...)
			case res.Status >= 400:
				log.Warn("request completed", attrs...)
			default:
				log.Info("request completed", attrs...)
			}

			if err != nil {
				log.Error("request error", "method", req.Method, "path", req.URL.Path, "error", err)
			}

			return err
		}
	}
}
