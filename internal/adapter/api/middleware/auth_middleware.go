package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"rewear/internal/infrastructure/auth"
	"rewear/pkg/errors"
	"rewear/pkg/response"
)

// TokenParser verifies a session token and returns its claims.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	tokens TokenParser
}

func NewAuthMiddleware(tokens TokenParser) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return response.Error(c, errors.Unauthorized("Invalid authorization format", nil))
		}

		claims, err := m.tokens.Parse(parts[1])
		if err != nil {
			return response.Error(c, errors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", claims.UserID)
		c.Set("role", claims.Role)

		return next(c)
	}
}
