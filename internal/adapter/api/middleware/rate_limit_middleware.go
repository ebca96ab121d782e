package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rewear/internal/infrastructure/ratelimit"
	"rewear/pkg/errors"
	"rewear/pkg/logger"
	"rewear/pkg/response"
)

// RateLimit throttles requests per client IP.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			if !limiter.Allow(ip) {
				logger.FromEcho(c).Warn("Rate limit exceeded", zap.String("ip", ip), zap.String("path", c.Path()))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}
			return next(c)
		}
	}
}
