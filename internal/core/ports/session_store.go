package ports

import (
	"context"

	"github.com/playerdash/gateway/internal/core/domain"
)

// SessionStore owns all Session entities. Implementations must be safe for
// concurrent use; a create/destroy race on the same token resolves last
// write wins.
//
// The in-memory store is the single-process reference backend; the Redis
// store serves multi-instance deployments behind the same contract.
type SessionStore interface {
	// Create mints a session for the user with a fresh cryptographically
	// random token and the store's configured TTL.
	Create(ctx context.Context, user domain.User) (*domain.Session, error)
	// Get returns the session for token, or (nil, nil) when the token is
	// unknown or expired. Expired entries are treated as absent.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Destroy removes the session unconditionally. Destroying an absent
	// token is not an error.
	Destroy(ctx context.Context, token string) error
}
