package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupCampaignRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	campaignHandler := handler.GetCampaignHandler()

	campaigns := e.Group("/v1/campaigns")
	campaigns.Use(authMiddleware.Authenticate)

	campaigns.GET("", campaignHandler.List)
	campaigns.POST("", campaignHandler.Create)
	campaigns.GET("/:id", campaignHandler.Get)
	campaigns.POST("/:id/join", campaignHandler.Join)
	campaigns.POST("/:id/leave", campaignHandler.Leave)
}
