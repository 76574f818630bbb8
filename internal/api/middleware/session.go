package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/api/sessioncookie"
	"github.com/playerdash/gateway/internal/core/domain"
	"github.com/playerdash/gateway/internal/core/ports"
)

// Context keys set by the session middleware. Handlers read the resolved
// session from the request-scoped echo context, never from any global slot.
const (
	SessionKey = "session"
	UserKey    = "user"
)

// Session hydrates the request context with the caller's session, resolved
// from the signed cookie or, failing that, from an Authorization bearer
// token. Hydration never rejects the request; guarding is RequireSession's
// job so that endpoints like /auth/check can answer for anonymous callers.
func Session(auth ports.AuthService, cookieSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := resolve(c, auth, cookieSecret)
			if sess != nil {
				c.Set(SessionKey, sess)
				c.Set(UserKey, sess.User)
			}
			return next(c)
		}
	}
}

func resolve(c echo.Context, auth ports.AuthService, cookieSecret string) *domain.Session {
	if token, ok := sessioncookie.Read(c, cookieSecret); ok {
		if sess, err := auth.Resolve(c.Request().Context(), token); err == nil {
			return sess
		}
	}

	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	sess, err := auth.ResolveBearer(c.Request().Context(), parts[1])
	if err != nil {
		return nil
	}
	return sess
}

// CurrentSession returns the hydrated session, or nil for anonymous requests.
func CurrentSession(c echo.Context) *domain.Session {
	sess, _ := c.Get(SessionKey).(*domain.Session)
	return sess
}

// CurrentUser returns the hydrated user. ok is false for anonymous requests.
func CurrentUser(c echo.Context) (domain.User, bool) {
	user, ok := c.Get(UserKey).(domain.User)
	return user, ok
}
