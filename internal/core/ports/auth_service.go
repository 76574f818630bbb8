package ports

import (
	"context"

	"github.com/playerdash/gateway/internal/core/domain"
)

type AuthService interface {
	// Login verifies credentials and issues a session. The returned string
	// is a bearer artifact (signed JWT carrying the session id) for clients
	// that cannot use cookies.
	Login(ctx context.Context, username, password string) (*domain.Session, string, error)
	// Logout destroys the session for token. Always succeeds.
	Logout(ctx context.Context, token string) error
	// Resolve returns the session behind an opaque token, or
	// domain.ErrUnauthenticated when no valid session exists.
	Resolve(ctx context.Context, token string) (*domain.Session, error)
	// ResolveBearer resolves a session from the bearer artifact issued by Login.
	ResolveBearer(ctx context.Context, bearer string) (*domain.Session, error)
}
