package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	// Credential endpoints sit behind the rate limiter.
	public := e.Group("/v1/auth", limiter.RateLimitMiddleware())
	public.POST("/register", authHandler.Register)
	public.POST("/login", authHandler.Login)
	public.POST("/refresh", authHandler.Refresh)

	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)
	protected.DELETE("/account", authHandler.DeleteAccount)
}
