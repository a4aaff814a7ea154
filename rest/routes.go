package rest

import (
	"github.com/labstack/echo/v4"
	echo_middleware "github.com/labstack/echo/v4/middleware"

	"newsroom/config"
	"newsroom/di"
	custom_middleware "newsroom/middleware"
	"newsroom/utils/logger"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	e.Validator = NewRequestValidator()

	e.Use(custom_middleware.RequestIDMiddleware())
	e.Use(echo_middleware.Recover())
	e.Use(custom_middleware.LoggingMiddleware(logger.Logger))

	v1 := e.Group("/v1")
	v1.GET("/health", healthHandler)
	v1.GET("/briefings/dates", listDatesHandler(container))
	v1.GET("/briefings/:date", getBriefingHandler(container))
	v1.POST("/visits", trackVisitHandler(container))

	v1.POST("/admin/login", loginHandler(container, cfg))

	admin := v1.Group("/admin", container.AdminAuth.RequireAdmin())
	admin.GET("/feeds", listFeedsHandler(container))
	admin.POST("/feeds", addFeedHandler(container))
	admin.DELETE("/feeds/:name", removeFeedHandler(container))
	admin.POST("/feeds/test", testFeedHandler(container))
	admin.POST("/collect", collectHandler(container))
	admin.GET("/stats", statsHandler(container))
}
