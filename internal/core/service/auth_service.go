package service

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/playerdash/gateway/internal/core/domain"
	"github.com/playerdash/gateway/internal/core/ports"
)

// AuthService issues and resolves sessions. Credential checking is delegated
// to a pluggable verifier so a real identity provider can be substituted
// without touching session issuance.
type AuthService struct {
	store     ports.SessionStore
	verifier  ports.CredentialVerifier
	jwtSecret string
}

func NewAuthService(store ports.SessionStore, verifier ports.CredentialVerifier, jwtSecret string) *AuthService {
	return &AuthService{store: store, verifier: verifier, jwtSecret: jwtSecret}
}

// Login verifies credentials and creates a session. Besides the session it
// returns a signed bearer token carrying the session id, for clients that
// cannot use cookies. The session store stays authoritative: destroying the
// session revokes the bearer token too.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	if username == "" || password == "" {
		return nil, "", fmt.Errorf("%w: username and password are required", domain.ErrBadRequest)
	}

	user, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		return nil, "", err
	}

	sess, err := s.store.Create(ctx, *user)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}

	bearer, err := s.bearerToken(sess)
	if err != nil {
		return nil, "", fmt.Errorf("sign bearer token: %w", err)
	}

	return sess, bearer, nil
}

// Logout destroys the session behind token. Destroying an unknown or already
// destroyed token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Destroy(ctx, token)
}

// Resolve returns the session for an opaque token. Unknown, expired and
// empty tokens all resolve to domain.ErrUnauthenticated.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("session lookup: %w", err)
	}
	if sess == nil {
		return nil, domain.ErrUnauthenticated
	}
	return sess, nil
}

// ResolveBearer resolves a session from the bearer token issued by Login.
func (s *AuthService) ResolveBearer(ctx context.Context, bearer string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(bearer, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrUnauthenticated
	}

	sid, _ := claims["sid"].(string)
	return s.Resolve(ctx, sid)
}

func (s *AuthService) bearerToken(sess *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"sid":      sess.Token,
		"username": sess.User.Username,
		"role":     sess.User.Role,
		"exp":      sess.ExpiresAt.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
