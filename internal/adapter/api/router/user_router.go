package router

import (
	"sparin/internal/adapter/api/handler"
	"sparin/internal/adapter/api/middleware"

	"github.com/labstack/echo/v4"
)

func SetupUserRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.GET("/me", userHandler.GetProfile)
	users.POST("/me", userHandler.CreateProfile)
	users.PATCH("/me", userHandler.UpdateProfile)
	users.POST("/me/photo", userHandler.UploadPhoto)
	users.GET("/:id", userHandler.GetUser)
}
