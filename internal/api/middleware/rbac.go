package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/core/domain"
)

// RequireRole enforces role-based access on top of RequireSession semantics:
// no session yields 401, a session with the wrong role yields 403.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := CurrentSession(c)
			if sess == nil {
				return domain.ErrUnauthenticated
			}
			if _, ok := allowed[sess.User.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
