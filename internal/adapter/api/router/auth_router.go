package router

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/handler"
	"rewear/internal/adapter/api/middleware"
	"rewear/internal/infrastructure/ratelimit"
)

func SetupAuthRouter(api *echo.Group, limiter *ratelimit.RateLimiter) {
	authHandler := handler.GetAuthHandler()

	auth := api.Group("/auth")
	if limiter != nil {
		auth.Use(middleware.RateLimit(limiter))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/details", authHandler.Details)
}
