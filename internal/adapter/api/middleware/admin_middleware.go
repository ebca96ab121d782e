package middleware

import (
	"github.com/labstack/echo/v4"

	"rewear/internal/domain/entity"
	"rewear/pkg/errors"
	"rewear/pkg/response"
)

// AdminMiddleware authorizes requests whose session carries the admin role.
// It must run after AuthMiddleware.Authenticate.
type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get("uid").(string); !ok {
			return response.Error(c, errors.Unauthorized("Authentication required", nil))
		}

		role, _ := c.Get("role").(string)
		if role != entity.RoleAdmin {
			return response.Error(c, errors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
