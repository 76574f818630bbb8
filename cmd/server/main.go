package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	redislib "github.com/redis/go-redis/v9"
	mongolib "go.mongodb.org/mongo-driver/mongo"

	"github.com/playerdash/gateway/internal/api"
	"github.com/playerdash/gateway/internal/core/ports"
	"github.com/playerdash/gateway/internal/core/service"
	"github.com/playerdash/gateway/internal/infrastructure/config"
	mongodb "github.com/playerdash/gateway/internal/infrastructure/db/mongo"
	redisdb "github.com/playerdash/gateway/internal/infrastructure/db/redis"
	"github.com/playerdash/gateway/internal/infrastructure/memory"
	"github.com/playerdash/gateway/pkg/logger"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fallback := logger.Init(logger.Options{})
		fallback.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Session store ---
	var (
		store ports.SessionStore
		rdb   *redislib.Client
	)
	switch cfg.Session.Backend {
	case "redis":
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer rdb.Close()
		store = redisdb.NewSessionStore(rdb, cfg.Session.TTL)
	default:
		mem := memory.NewSessionStore(cfg.Session.TTL)
		go mem.Run(ctx, sweepInterval)
		store = mem
	}

	// --- Credential verifier ---
	var (
		verifier ports.CredentialVerifier
		db       *mongolib.Database
	)
	switch cfg.Credentials.Backend {
	case "mongo":
		var client *mongolib.Client
		client, db, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connection failed")
		}
		defer func() { _ = client.Disconnect(context.Background()) }()
		verifier = mongodb.NewCredentialRepository(db)
	default:
		verifier = service.NewStaticVerifier(cfg.Credentials.Username, cfg.Credentials.Password, "")
	}

	authService := service.NewAuthService(store, verifier, cfg.JWTSecret)

	if len(cfg.Proxy.AllowedHosts) == 0 {
		log.Warn().Msg("PROXY_ALLOWED_HOSTS is empty: the header-directed proxy will forward to any target")
	}
	forwarder := service.NewHTTPForwarder(cfg.Proxy.Timeout, cfg.Proxy.AllowedHosts)

	e, err := api.NewRouter(api.Dependencies{
		Config:    cfg,
		Logger:    log,
		Auth:      authService,
		Forwarder: forwarder,
		Redis:     rdb,
		Mongo:     db,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.Env).Msg("gateway listening")
		if err := e.Start(cfg.Addr()); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
