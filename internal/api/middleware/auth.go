package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/core/domain"
)

// RequireSession guards a route: requests without a hydrated session fail
// with domain.ErrUnauthenticated (rendered as 401 by the error boundary).
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentSession(c) == nil {
				return domain.ErrUnauthenticated
			}
			return next(c)
		}
	}
}
