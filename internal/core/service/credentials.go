package service

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/playerdash/gateway/internal/core/domain"
)

// StaticVerifier checks credentials against a single configured pair. It is
// the reference verifier; production deployments plug a real identity
// provider (e.g. the Mongo-backed repository) into the same interface.
type StaticVerifier struct {
	username string
	password string
	role     string
}

// NewStaticVerifier builds a verifier for one fixed account. password may be
// either a plaintext value or a bcrypt hash (recognised by its $2 prefix).
func NewStaticVerifier(username, password, role string) *StaticVerifier {
	if role == "" {
		role = domain.RoleAdmin
	}
	return &StaticVerifier{username: username, password: password, role: role}
}

func (v *StaticVerifier) Verify(_ context.Context, username, password string) (*domain.User, error) {
	ok := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	if strings.HasPrefix(v.password, "$2") {
		ok = bcrypt.CompareHashAndPassword([]byte(v.password), []byte(password)) == nil && ok
	} else {
		ok = subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1 && ok
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.User{
		ID:        "1",
		Username:  v.username,
		Role:      v.role,
		LoginTime: time.Now().UTC(),
	}, nil
}
