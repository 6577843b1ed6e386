package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupRoomRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	roomHandler := handler.GetRoomHandler()

	rooms := e.Group("/v1/rooms")
	rooms.Use(authMiddleware.Authenticate)

	rooms.GET("", roomHandler.List)
	rooms.POST("", roomHandler.Create)
	rooms.GET("/:id", roomHandler.Get)
	rooms.DELETE("/:id", roomHandler.Delete)
	rooms.POST("/:id/join", roomHandler.Join)
	rooms.POST("/:id/leave", roomHandler.Leave)
}
