package ports

import (
	"context"

	"github.com/playerdash/gateway/internal/core/domain"
)

// CredentialVerifier is the seam for plugging in a real identity provider.
// Verify returns the authenticated user on success and
// domain.ErrInvalidCredentials when the check fails.
type CredentialVerifier interface {
	Verify(ctx context.Context, username, password string) (*domain.User, error)
}
