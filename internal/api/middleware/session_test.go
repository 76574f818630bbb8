package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/playerdash/gateway/internal/api/sessioncookie"
	"github.com/playerdash/gateway/internal/core/domain"
)

const testCookieSecret = "test-cookie-secret"

// stubAuthService resolves exactly one known token.
type stubAuthService struct {
	token  string
	bearer string
	sess   *domain.Session
}

func newStubAuthService() *stubAuthService {
	sess := &domain.Session{
		Token:     "known-token",
		User:      domain.User{ID: "1", Username: "admin", Role: domain.RoleAdmin, LoginTime: time.Now().UTC()},
		CreatedAt: time.Now().UTC(),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	return &stubAuthService{token: sess.Token, bearer: "known-bearer", sess: sess}
}

func (s *stubAuthService) Login(context.Context, string, string) (*domain.Session, string, error) {
	return s.sess, s.bearer, nil
}

func (s *stubAuthService) Logout(context.Context, string) error { return nil }

func (s *stubAuthService) Resolve(_ context.Context, token string) (*domain.Session, error) {
	if token == s.token {
		return s.sess, nil
	}
	return nil, domain.ErrUnauthenticated
}

func (s *stubAuthService) ResolveBearer(_ context.Context, bearer string) (*domain.Session, error) {
	if bearer == s.bearer {
		return s.sess, nil
	}
	return nil, domain.ErrUnauthenticated
}

func hydrate(t *testing.T, req *http.Request) echo.Context {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(newStubAuthService(), testCookieSecret)
	handler := mw(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c
}

func TestSession_HydratesFromSignedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  sessioncookie.Name,
		Value: sessioncookie.Sign("known-token", testCookieSecret),
	})

	c := hydrate(t, req)

	sess := CurrentSession(c)
	if sess == nil {
		t.Fatalf("expected hydrated session")
	}
	user, ok := CurrentUser(c)
	if !ok || user.Username != "admin" {
		t.Fatalf("expected hydrated user, got %+v", user)
	}
}

func TestSession_IgnoresTamperedCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  sessioncookie.Name,
		Value: "known-token.forged-signature",
	})

	c := hydrate(t, req)

	if CurrentSession(c) != nil {
		t.Fatalf("tampered cookie must not hydrate a session")
	}
}

func TestSession_IgnoresUnknownToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  sessioncookie.Name,
		Value: sessioncookie.Sign("other-token", testCookieSecret),
	})

	c := hydrate(t, req)

	if CurrentSession(c) != nil {
		t.Fatalf("unknown token must not hydrate a session")
	}
}

func TestSession_HydratesFromBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer known-bearer")

	c := hydrate(t, req)

	if CurrentSession(c) == nil {
		t.Fatalf("expected session from bearer token")
	}
}

func TestSession_AnonymousPassesThrough(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	c := hydrate(t, req)

	if CurrentSession(c) != nil {
		t.Fatalf("anonymous request must stay anonymous")
	}
}
