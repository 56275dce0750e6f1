// Package app wires configuration, storage, services, and the HTTP server
// into a running process.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/triptribe/backend/internal/adapter/blob"
	"github.com/triptribe/backend/internal/adapter/postgres"
	activityrepo "github.com/triptribe/backend/internal/adapter/postgres/activity"
	tokenrepo "github.com/triptribe/backend/internal/adapter/postgres/token"
	triprepo "github.com/triptribe/backend/internal/adapter/postgres/trip"
	userrepo "github.com/triptribe/backend/internal/adapter/postgres/user"
	jwtauth "github.com/triptribe/backend/internal/auth"
	"github.com/triptribe/backend/internal/config"
	activitysvc "github.com/triptribe/backend/internal/service/activity"
	authsvc "github.com/triptribe/backend/internal/service/auth"
	tripsvc "github.com/triptribe/backend/internal/service/trip"
	usersvc "github.com/triptribe/backend/internal/service/user"
	"github.com/triptribe/backend/internal/transport/middleware"
	"github.com/triptribe/backend/internal/transport/rest"
	"github.com/triptribe/backend/migrations"
)

// Run is the application entry point. It loads configuration, applies
// pending migrations, wires the services, and serves HTTP until the
// context is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if err := migrate(ctx, cfg.Database.DSN, logger); err != nil {
		return fmt.Errorf("app: migrate: %w", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("app: connect database: %w", err)
	}
	defer pool.Close()

	blobs, err := blob.NewFSStore(cfg.Storage.Root, cfg.Storage.BaseURL)
	if err != nil {
		return fmt.Errorf("app: blob store: %w", err)
	}

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	trips := triprepo.New(pool)
	activities := activityrepo.New(pool)
	txm := postgres.NewTxManager(pool)

	jwtm := jwtauth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	auths := authsvc.NewService(logger, users, tokens, jwtm, cfg.Auth)
	userSvc := usersvc.NewService(logger, users, trips, activities, blobs, txm)
	tripSvc := tripsvc.NewService(logger, trips, activities, users, txm)
	activitySvc := activitysvc.NewService(logger, activities, trips, blobs)

	limiter := middleware.NewRateLimiter(5 * time.Minute)
	defer limiter.Stop()

	base := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		limiter.Limit(cfg.Server.RateLimitPerMin),
		middleware.Auth(auths),
		middleware.Logger(logger),
	)

	router := rest.NewRouter(rest.Handlers{
		Auth:     rest.NewAuthHandler(auths, logger),
		Me:       rest.NewMeHandler(userSvc, logger),
		Trip:     rest.NewTripHandler(tripSvc, logger),
		Activity: rest.NewActivityHandler(activitySvc, logger),
		Health:   rest.NewHealthHandler(pool, BuildVersion()),
		BlobFS:   http.Dir(cfg.Storage.Root),
	}, base)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("app: serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("app: shutdown: %w", err)
	}

	return nil
}

// migrate applies pending goose migrations. goose requires database/sql,
// so a short-lived connection is opened outside the pgx pool.
func migrate(ctx context.Context, dsn string, logger *slog.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("goose new provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	for _, r := range results {
		logger.Info("migration applied", slog.String("source", r.Source.Path))
	}

	return nil
}
