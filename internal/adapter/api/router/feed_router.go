package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupFeedRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	feedHandler := handler.GetFeedHandler()

	feed := e.Group("/v1/feed")
	feed.Use(authMiddleware.Authenticate)

	feed.GET("", feedHandler.HomeFeed)
	feed.GET("/insights", feedHandler.Insights)
	feed.POST("/insights", feedHandler.GenerateInsight)
}
