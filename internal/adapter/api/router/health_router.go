package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
)

func SetupHealthRouter(e *echo.Echo) {
	healthHandler := handler.GetHealthHandler()
	if healthHandler == nil {
		healthHandler = handler.NewHealthHandler(nil)
	}
	e.GET("/health", healthHandler.CheckHealth)
}
