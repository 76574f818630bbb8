package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/playerdash/gateway/internal/api/sessioncookie"
	"github.com/playerdash/gateway/internal/core/service"
	"github.com/playerdash/gateway/internal/infrastructure/config"
	"github.com/playerdash/gateway/internal/infrastructure/memory"
)

const allowedOrigin = "http://localhost:3000"

// The router is built once: echoprometheus registers its collectors with
// the default registry, and registering twice panics.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
)

func router(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		staticRoot, err := os.MkdirTemp("", "gateway-static")
		if err != nil {
			panic(err)
		}
		_ = os.WriteFile(filepath.Join(staticRoot, "index.html"), []byte("<html>spa shell</html>"), 0o644)
		_ = os.WriteFile(filepath.Join(staticRoot, "app.js"), []byte("console.log('app')"), 0o644)

		cfg := &config.Config{
			Host:         "127.0.0.1",
			Port:         "0",
			Env:          "test",
			CookieSecret: "test-cookie-secret",
			JWTSecret:    "test-jwt-secret",
			Session:      config.SessionConfig{TTL: time.Hour, Backend: "memory"},
			Proxy: config.ProxyConfig{
				UpstreamBaseURL: "http://localhost:5000/api",
				Timeout:         time.Second,
				Header:          "X-Target-Url",
				MaxBodySize:     "1K",
			},
			CORS:   config.CORSConfig{Origins: []string{allowedOrigin}},
			Static: config.StaticConfig{Root: staticRoot},
		}

		store := memory.NewSessionStore(cfg.Session.TTL)
		verifier := service.NewStaticVerifier("admin", "123456", "")
		auth := service.NewAuthService(store, verifier, cfg.JWTSecret)
		forwarder := service.NewHTTPForwarder(cfg.Proxy.Timeout, nil)

		testRouter, err = NewRouter(Dependencies{
			Config:    cfg,
			Logger:    zerolog.Nop(),
			Auth:      auth,
			Forwarder: forwarder,
		})
		if err != nil {
			panic(err)
		}
	})
	return testRouter
}

func do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router(t).ServeHTTP(rec, req)
	return rec
}

func TestRouter_CORSPreflight_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, allowedOrigin)
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

	rec := do(t, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != allowedOrigin {
		t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, allowedOrigin)
	}
	if rec.Header().Get(echo.HeaderAccessControlAllowCredentials) != "true" {
		t.Fatalf("credentials not allowed for permitted origin")
	}
}

func TestRouter_CORSPreflight_DisallowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/auth/login", nil)
	req.Header.Set(echo.HeaderOrigin, "http://evil.example.com")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)

	rec := do(t, req)

	if got := rec.Header().Get(echo.HeaderAccessControlAllowOrigin); got != "" {
		t.Fatalf("origin must not be reflected for disallowed origins, got %q", got)
	}
}

func TestRouter_LoginProfileRoundtrip(t *testing.T) {
	login := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"123456"}`))
	login.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := do(t, login)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessioncookie.Name {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("login did not set the session cookie")
	}

	profile := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	profile.AddCookie(cookie)
	rec = do(t, profile)
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	var body struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal profile: %v", err)
	}
	if body.Data.Username != "admin" {
		t.Fatalf("profile user = %q, want admin", body.Data.Username)
	}
}

func TestRouter_ProfileWithoutSession(t *testing.T) {
	rec := do(t, httptest.NewRequest(http.MethodGet, "/auth/profile", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("401 body is not the JSON envelope: %s", rec.Body.String())
	}
	if env.Success {
		t.Fatalf("success must be false")
	}
}

func TestRouter_BodyLimit(t *testing.T) {
	big := strings.Repeat("x", 4096)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(big))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	rec := do(t, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestRouter_ProxyMissingTarget(t *testing.T) {
	rec := do(t, httptest.NewRequest(http.MethodGet, "/proxy", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "missing target url") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_StaticFileAndSPAFallback(t *testing.T) {
	rec := do(t, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "console.log") {
		t.Fatalf("static file not served: %d %s", rec.Code, rec.Body.String())
	}

	// Client-side routes fall back to the SPA shell.
	rec = do(t, httptest.NewRequest(http.MethodGet, "/dashboard/players", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "spa shell") {
		t.Fatalf("SPA fallback not served: %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnknownAPIRouteIsJSON404(t *testing.T) {
	rec := do(t, httptest.NewRequest(http.MethodGet, "/auth/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("404 under a routed prefix must be the JSON envelope, got: %s", rec.Body.String())
	}
}

func TestRouter_Health(t *testing.T) {
	rec := do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health body: %s", rec.Body.String())
	}
}
