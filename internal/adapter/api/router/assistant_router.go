package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
)

func SetupAssistantRouter(api *echo.Group) {
	assistantHandler := handler.GetAssistantHandler()

	api.POST("/assistant/search", assistantHandler.Search)
}
