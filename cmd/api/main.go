// Copyright (c) 2026 Raduga Center. All rights reserved.

// Command api is the entry point for the Raduga records API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire services, the auth gate, and HTTP route groups.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raduga-center/raduga/internal/accounts/role"
	"github.com/raduga-center/raduga/internal/accounts/user"
	"github.com/raduga-center/raduga/internal/api"
	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/platform/cache"
	"github.com/raduga-center/raduga/internal/platform/config"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/metrics"
	"github.com/raduga-center/raduga/internal/platform/migration"
	pgstore "github.com/raduga-center/raduga/internal/platform/postgres"
	redisstore "github.com/raduga-center/raduga/internal/platform/redis"
	"github.com/raduga-center/raduga/internal/platform/sec"
	"github.com/raduga-center/raduga/internal/records/document"
	"github.com/raduga-center/raduga/internal/records/patient"
	"github.com/raduga-center/raduga/internal/stats"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Raduga] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. A 30s deadline catches misconfiguration
	// quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security & Cache ───────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	responseCache := cache.NewStore(rdb, cfg.CacheTTL, log)
	metrics.Register()

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	principalStore := auth.NewPostgresStore(pool)
	gate := auth.NewGate(jwtSvc, principalStore)
	authHandler := auth.NewHandler(auth.NewService(principalStore, jwtSvc))

	patientService := patient.NewService(patient.NewPostgresRepository(pool), log)
	documentService := document.NewService(document.NewPostgresRepository(pool), log)
	roleService := role.NewService(role.NewPostgresRepository(pool), log)

	userRepository := user.NewPostgresRepository(pool)
	userService := user.NewService(userRepository, log)
	photoService, err := user.NewPhotoService(userRepository, log, cfg.UploadDir)
	must(log, err, "initialize photo storage")

	statsService := stats.NewService(stats.NewPostgresRepository(pool))

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	routes := api.Routes{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler.Routes(),
		Patients:   patient.Routes(patientService, gate, responseCache),
		Documents:  document.Routes(documentService, gate, responseCache),
		Users:      user.Routes(userService, photoService, gate, responseCache),
		Roles:      role.Routes(roleService, gate, responseCache),
		Statistics: stats.Routes(statsService, gate, responseCache),
	}

	server := api.NewServer(context.Background(), cfg, log, routes)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
