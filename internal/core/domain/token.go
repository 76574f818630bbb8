package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSessionToken generates a cryptographically random opaque session token
// with 256 bits of entropy. Tokens are never reused across logins.
func NewSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
