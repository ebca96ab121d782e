package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
	"rewear/internal/adapter/api/middleware"
)

func SetupAdminRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	adminHandler := handler.GetAdminHandler()

	admin := api.Group("/admin")
	admin.Use(authMiddleware.Authenticate)
	admin.Use(adminMiddleware.AdminOnly)

	admin.GET("/stats", adminHandler.GetStats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/user/:id", adminHandler.GetUser)
	admin.DELETE("/user/:id", adminHandler.DeleteUser)
	admin.GET("/products", adminHandler.ListProducts)
	admin.GET("/product/:id", adminHandler.GetProduct)
	admin.DELETE("/product/:id", adminHandler.DeleteProduct)
}
