// Package sessioncookie issues and reads the signed, HttpOnly session
// cookie. The cookie value is "<token>.<hmac>"; the signature keeps a
// tampered token from ever reaching the session store.
package sessioncookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Name matches the cookie key of the original front-end deployment.
const Name = "SESSIONID"

// Sign returns the cookie value for a session token.
func Sign(token, secret string) string {
	return token + "." + signature(token, secret)
}

// Verify checks a cookie value's signature and returns the embedded token.
// ok is false for malformed values and bad signatures.
func Verify(value, secret string) (token string, ok bool) {
	token, sig, found := strings.Cut(value, ".")
	if !found || token == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sig), []byte(signature(token, secret))) {
		return "", false
	}
	return token, true
}

// Set issues the session cookie on the response.
func Set(c echo.Context, value string, expiresAt time.Time, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie from the client.
func Clear(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read extracts and verifies the session token from the request cookie.
func Read(c echo.Context, secret string) (token string, ok bool) {
	cookie, err := c.Cookie(Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return Verify(cookie.Value, secret)
}

func signature(token, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(token))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
