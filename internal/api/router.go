package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/playerdash/gateway/internal/api/handler"
	"github.com/playerdash/gateway/internal/api/middleware"
	"github.com/playerdash/gateway/internal/core/ports"
	"github.com/playerdash/gateway/internal/infrastructure/config"
)

const version = "1.0.0"

// routedPrefixes are the paths claimed by the gateway itself; everything
// else falls through to the static asset server and its SPA shell.
var routedPrefixes = []string{"/api", "/auth", "/proxy", "/health", "/metrics"}

// Dependencies bundles everything the router needs. Redis and Mongo are nil
// unless the corresponding backend is configured; readiness skips nil deps.
type Dependencies struct {
	Config    *config.Config
	Logger    zerolog.Logger
	Auth      ports.AuthService
	Forwarder ports.Forwarder
	Redis     *redis.Client
	Mongo     *mongo.Database
}

// NewRouter builds the Echo instance with the full middleware pipeline:
// CORS → body limit → session hydration → route dispatch, wrapped by the
// recover middleware and the error boundary.
func NewRouter(deps Dependencies) (*echo.Echo, error) {
	cfg := deps.Config

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("gateway"))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORS.Origins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAuthorization,
			cfg.Proxy.Header,
		},
	}))
	e.Use(echomiddleware.BodyLimit(cfg.Proxy.MaxBodySize))
	e.Use(middleware.Session(deps.Auth, cfg.CookieSecret))
	e.Use(echomiddleware.StaticWithConfig(echomiddleware.StaticConfig{
		Skipper: staticSkipper,
		Root:    cfg.Static.Root,
		Index:   "index.html",
		HTML5:   true, // SPA fallback so client-side routing works
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, cfg.CookieSecret, cfg.Env == "production")
	proxyHandler, err := handler.NewProxyHandler(deps.Forwarder, cfg.Proxy.UpstreamBaseURL, cfg.Proxy.Header)
	if err != nil {
		return nil, err
	}

	// --- Routes ---
	e.GET("/", banner)
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(deps.Redis, deps.Mongo).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	auth := e.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/profile", authHandler.Profile, middleware.RequireSession())
	auth.GET("/check", authHandler.Check)

	e.Any("/api/*", proxyHandler.API)
	e.Any("/proxy", proxyHandler.Target)
	e.Any("/proxy/*", proxyHandler.Target)

	return e, nil
}

func banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message":   "player dashboard gateway",
		"version":   version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func staticSkipper(c echo.Context) bool {
	p := c.Request().URL.Path
	for _, prefix := range routedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}

// requestLogger emits one structured line per completed request: method,
// URI, status, latency, request id.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error()
			}
			if v.Error != nil {
				evt = evt.Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
