package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
)

func SetupProductRouter(api *echo.Group) {
	productHandler := handler.GetProductHandler()

	products := api.Group("/products")
	products.POST("/add", productHandler.CreateProduct)
	products.GET("/all", productHandler.ListProducts)
	products.GET("/top-liked", productHandler.ListTopLiked)
	products.GET("/search", productHandler.SearchProducts)
	products.GET("/user/:userId", productHandler.ListUserProducts)
	products.GET("/nearby/:address", productHandler.ListNearby)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("/like/:id", productHandler.LikeProduct)
	products.PATCH("/status/:id", productHandler.UpdateStatus)
	products.DELETE("/delete/:id", productHandler.DeleteProduct)
}
