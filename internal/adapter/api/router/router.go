package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rewear/internal/adapter/api/middleware"
	"rewear/internal/infrastructure/ratelimit"
)

// Setup mounts every API route under /api plus the ops endpoints at the root.
// A nil metricsHandler leaves /metrics unmounted.
func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	authLimiter *ratelimit.RateLimiter,
	metricsHandler http.Handler,
) {
	api := e.Group("/api")

	SetupAuthRouter(api, authLimiter)
	SetupProductRouter(api)
	SetupSwapRouter(api)
	SetupUserRouter(api, authMiddleware)
	SetupAssistantRouter(api)
	SetupAdminRouter(api, authMiddleware, adminMiddleware)

	SetupHealthRouter(e)
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}
}
