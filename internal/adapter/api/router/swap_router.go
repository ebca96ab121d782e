package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
)

func SetupSwapRouter(api *echo.Group) {
	swapHandler := handler.GetSwapHandler()

	swaps := api.Group("/swaps")
	swaps.POST("/create", swapHandler.CreateSwapRequest)
	swaps.GET("/product/:productId", swapHandler.ListByProduct)
	swaps.GET("/user/:userId", swapHandler.ListByUser)
	swaps.PATCH("/update-status/:id", swapHandler.UpdateStatus)
	swaps.DELETE("/delete/:id", swapHandler.DeleteSwapRequest)
}
