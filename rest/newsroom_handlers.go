package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"newsroom/di"
	"newsroom/domain"
	"newsroom/utils/errors"
)

// visitorCookieName marks a browser session that has already been counted.
const visitorCookieName = "visitor_session"

func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

func listDatesHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		dates, err := container.BriefingReaderUsecase.ListDates(c.Request().Context())
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, DatesResponse{Dates: dates})
	}
}

func getBriefingHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		date := c.Param("date")
		if _, err := time.Parse(domain.DateFormat, date); err != nil {
			return errorResponse(c, errors.ValidationError("date must look like 2006-01-02",
				map[string]interface{}{"date": date}))
		}

		briefing, err := container.BriefingReaderUsecase.GetBriefing(c.Request().Context(), date)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(http.StatusOK, briefing)
	}
}

func trackVisitHandler(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		sessionSeen := false
		if cookie, err := c.Cookie(visitorCookieName); err == nil && cookie.Value != "" {
			sessionSeen = true
		}

		counted := container.VisitorStatsUsecase.TrackVisit(c.Request().Context(), sessionSeen)
		if counted {
			c.SetCookie(&http.Cookie{
				Name:     visitorCookieName,
				Value:    uuid.New().String(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		return c.JSON(http.StatusOK, VisitResponse{Counted: counted})
	}
}
