// @title           Manhwa Catalog API
// @version         1.0
// @description     Catalog, bookmark and account API with JWT bearer authentication.
// @BasePath        /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/manhwalog/manhwa-api/docs"
	"github.com/manhwalog/manhwa-api/internal/api"
	"github.com/manhwalog/manhwa-api/internal/api/handler"
	"github.com/manhwalog/manhwa-api/internal/core/auth"
	"github.com/manhwalog/manhwa-api/internal/core/service"
	mongodb "github.com/manhwalog/manhwa-api/internal/infrastructure/db/mongo"
	redisdb "github.com/manhwalog/manhwa-api/internal/infrastructure/db/redis"
	"github.com/manhwalog/manhwa-api/internal/infrastructure/queue"
	"github.com/manhwalog/manhwa-api/internal/pkg/config"
	"github.com/manhwalog/manhwa-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "manhwa-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	users := mongodb.NewUserRepository(db)
	catalog := mongodb.NewManhwaRepository(db)
	bookmarks := mongodb.NewBookmarkRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)
	if err := mongodb.EnsureIndexes(ctx, users, catalog, bookmarks, auditRepo); err != nil {
		return err
	}

	// --- Auth core ---
	tokenCfg := auth.Config{
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
		AccessTTL:     cfg.Auth.AccessTTL.Duration(),
		RefreshTTL:    cfg.Auth.RefreshTTL.Duration(),
		Issuer:        cfg.Auth.Issuer,
	}
	issuer, err := auth.NewIssuer(tokenCfg)
	if err != nil {
		return err
	}
	verifier, err := auth.NewVerifier(tokenCfg)
	if err != nil {
		return err
	}
	hasher := auth.NewHasher(cfg.Auth.BcryptCost)
	limiter := redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockout.Duration())

	audit := queue.NewDispatcher(cfg.Audit.Workers, auditRepo, log.With().Str("component", "audit").Logger())
	audit.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:                log,
		CORSOrigins:        cfg.CORSOrigins,
		RegisterRatePerMin: cfg.Auth.RegisterRatePerMin,
		Verifier:           verifier,
		Identities:         users,
		AuthService:        service.NewAuthService(users, hasher, issuer, limiter, audit, log),
		UserService:        service.NewUserService(users, bookmarks, hasher, audit, log),
		ManhwaService:      service.NewManhwaService(catalog, bookmarks, log),
		BookmarkService:    service.NewBookmarkService(bookmarks, catalog),
		HealthChecks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
	})
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
