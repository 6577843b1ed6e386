package router

import (
	"sparin/internal/adapter/api/handler"

	"github.com/labstack/echo/v4"
)

// SetupDevRouter exposes the token mint. Only wired when the server runs
// in the development environment.
func SetupDevRouter(e *echo.Echo) {
	devTokenHandler := handler.GetDevTokenHandler()
	e.POST("/dev/token", devTokenHandler.GenerateToken)
}
