package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rewear/pkg/logger"
)

// StoreCheck reports whether the backing store is reachable.
type StoreCheck func(ctx context.Context) error

type HealthHandler struct {
	checkStore StoreCheck
}

var healthHandler *HealthHandler

func NewHealthHandler(checkStore StoreCheck) *HealthHandler {
	return &HealthHandler{
		checkStore: checkStore,
	}
}

func SetupHealthHandler(checkStore StoreCheck) {
	healthHandler = NewHealthHandler(checkStore)
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}

func (h *HealthHandler) CheckHealth(c echo.Context) error {
	body := map[string]string{
		"status": "ok",
		"store":  "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if h.checkStore != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := h.checkStore(ctx); err != nil {
			logger.FromEcho(c).Warn("Store health check failed", zap.Error(err))
			body["status"] = "degraded"
			body["store"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}

	return c.JSON(http.StatusOK, body)
}
