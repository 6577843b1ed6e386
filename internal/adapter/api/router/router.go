package router

import (
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *middleware.RateLimiter) {
	SetupAuthRouter(e, authMiddleware, limiter)
	SetupUserRouter(e, authMiddleware)
	SetupCommunityRouter(e, authMiddleware)
	SetupRoomRouter(e, authMiddleware)
	SetupCampaignRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupMatchRouter(e, authMiddleware)
	SetupFeedRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
