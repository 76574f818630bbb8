package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is the full environment-driven configuration of the gateway.
type Config struct {
	Host     string `env:"HOST,      default=0.0.0.0"`
	Port     string `env:"PORT,      default=3001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// CookieSecret signs the session cookie; JWTSecret signs the bearer
	// token issued for non-browser clients.
	CookieSecret string `env:"COOKIE_SECRET, default=dev-cookie-secret"`
	JWTSecret    string `env:"JWT_SECRET,    default=dev-jwt-secret"`

	Session     SessionConfig
	Proxy       ProxyConfig
	CORS        CORSConfig
	Static      StaticConfig
	Credentials CredentialConfig
	Redis       RedisConfig
	Mongo       MongoConfig
}

type SessionConfig struct {
	// TTL is the fixed session lifetime. Expiry is a fixed window from
	// login; sessions are never renewed on access.
	TTL     time.Duration `env:"SESSION_TTL,     default=24h"`
	Backend string        `env:"SESSION_BACKEND, default=memory"` // memory | redis
}

type ProxyConfig struct {
	// UpstreamBaseURL is the fixed base address for the path-prefix proxy.
	UpstreamBaseURL string        `env:"UPSTREAM_BASE_URL, default=http://localhost:5000/api"`
	Timeout         time.Duration `env:"PROXY_TIMEOUT,     default=10s"`
	// Header names the routing header for the header-directed proxy.
	Header string `env:"PROXY_HEADER, default=X-Target-Url"`
	// AllowedHosts restricts header-directed targets. Empty means any
	// target is allowed (reference behaviour); main logs a warning.
	AllowedHosts []string `env:"PROXY_ALLOWED_HOSTS"`
	// MaxBodySize is an echo body-limit expression such as "200M".
	MaxBodySize string `env:"MAX_BODY_SIZE, default=200M"`
}

type CORSConfig struct {
	Origins []string `env:"CORS_ORIGINS"`
}

type StaticConfig struct {
	Root string `env:"STATIC_ROOT, default=public"`
}

type CredentialConfig struct {
	Backend  string `env:"CREDENTIAL_BACKEND, default=static"` // static | mongo
	Username string `env:"ADMIN_USERNAME,     default=admin"`
	Password string `env:"ADMIN_PASSWORD,     default=123456"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=playerdash"`
}

// defaultCORSOrigins mirrors the front end's development hosts.
var defaultCORSOrigins = []string{"http://localhost:3000", "http://localhost:3001"}

// Load reads configuration from environment variables and validates the
// combinations that must fail at startup rather than at request time.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if len(cfg.CORS.Origins) == 0 {
		cfg.CORS.Origins = defaultCORSOrigins
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	// The gateway always allows credentialed CORS, and wildcard plus
	// credentials is never a valid combination.
	for _, origin := range c.CORS.Origins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain a wildcard: credentialed requests require explicit origins")
		}
	}

	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_BACKEND must be memory or redis, got %q", c.Session.Backend)
	}

	switch c.Credentials.Backend {
	case "static", "mongo":
	default:
		return fmt.Errorf("CREDENTIAL_BACKEND must be static or mongo, got %q", c.Credentials.Backend)
	}

	if !strings.HasPrefix(c.Proxy.UpstreamBaseURL, "http://") && !strings.HasPrefix(c.Proxy.UpstreamBaseURL, "https://") {
		return fmt.Errorf("UPSTREAM_BASE_URL must be an absolute http(s) URL, got %q", c.Proxy.UpstreamBaseURL)
	}

	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}
