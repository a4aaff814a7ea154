package rest

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"newsroom/config"
	"newsroom/di"
	"newsroom/domain"
	"newsroom/middleware"
	"newsroom/utils/errors"
	"newsroom/utils/logger"
)

func loginHandler(container *di.ApplicationComponents, cfg *config.Config) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req LoginRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		if subtle.ConstantTimeCompare([]byte(req.Password), []byte(cfg.Admin.Password)) != 1 {
			logger.Logger.Warn("admin login rejected", "remote_addr", c.RealIP())
			return errorResponse(c, errors.UnauthorizedError("wrong password", nil))
		}

		token, expiresAt, err := container.AdminAuth.IssueToken()
		if err != nil {
			return errorResponse(c, err)
		}

		c.SetCookie(&http.Cookie{
			Name:     middleware.SessionCookieName,
			Value:    token,
			Path:     "/",
			Expires:  expiresAt,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		return c.JSON(http.StatusOK, LoginResponse{ExpiresAt: expiresAt.Format(time.RFC3339)})
	}
}

func listFeedsHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		feeds, err := container.FeedRegistryUsecase.List(c.Request().Context())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, FeedsResponse{Feeds: feeds})
	}
}

func addFeedHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req AddFeedRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}

		feed := domain.FeedConfig{Name: req.Name, URL: req.URL, Enabled: true}
		if req.Enabled != nil {
			feed.Enabled = *req.Enabled
		}

		if err := container.FeedRegistryUsecase.Add(c.Request().Context(), feed); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusCreated, feed)
	}
}

func removeFeedHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		if err := container.FeedRegistryUsecase.Remove(c.Request().Context(), name); err != nil {
			return errorResponse(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func testFeedHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req TestFeedRequest
		if err := bindAndValidate(c, &req); err != nil {
			return err
		}
		result := container.FeedRegistryUsecase.TestFeed(c.Request().Context(), req.URL)
		return c.JSON(http.StatusOK, result)
	}
}

// collectHandler runs the pipeline synchronously and reports every stage, so
// a failed run still shows how far it got.
func collectHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		var steps []CollectStep
		briefing, err := container.CollectNewsUsecase.Run(c.Request().Context(),
			func(step, total int, message string) {
				steps = append(steps, CollectStep{Step: step, Total: total, Message: message})
			})

		if err != nil {
			return c.JSON(http.StatusInternalServerError, CollectResponse{
				Steps: steps,
				Error: err.Error(),
			})
		}
		return c.JSON(http.StatusOK, CollectResponse{
			Success:  true,
			Steps:    steps,
			Briefing: &briefing,
		})
	}
}

func statsHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := container.VisitorStatsUsecase.GetStats(c.Request().Context())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}
