package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
	"rewear/internal/adapter/api/middleware"
)

func SetupUserRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	users := api.Group("/users")
	users.GET("/profile", userHandler.GetProfile, authMiddleware.Authenticate)
	users.POST("/:id/likes/:productId", userHandler.ToggleLike)
	users.PATCH("/:id/profile", userHandler.UpdateProfile)
	users.POST("/:id/earnings", userHandler.RecordEarnings)
	users.POST("/:id/spent", userHandler.RecordSpent)
}
