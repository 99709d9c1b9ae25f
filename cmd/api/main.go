// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

// Command api is the entry point for the CareFinder HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the directory tiers, portal, and ingestion job.
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

	"github.com/carefinder-au/carefinder/internal/api"
	"github.com/carefinder-au/carefinder/internal/directory/audit"
	"github.com/carefinder-au/carefinder/internal/directory/facet"
	"github.com/carefinder-au/carefinder/internal/directory/fallback"
	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/directory/review"
	"github.com/carefinder-au/carefinder/internal/ingest"
	"github.com/carefinder-au/carefinder/internal/places"
	"github.com/carefinder-au/carefinder/internal/platform/config"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/internal/platform/migration"
	pgstore "github.com/carefinder-au/carefinder/internal/platform/postgres"
	redisstore "github.com/carefinder-au/carefinder/internal/platform/redis"
	"github.com/carefinder-au/carefinder/internal/platform/sec"
	"github.com/carefinder-au/carefinder/internal/users/auth"
	"github.com/carefinder-au/carefinder/internal/users/profile"
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

	log.Info("service_initializing")

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
		slog.String("data_backend", string(cfg.DataBackend)),
		slog.Bool("places_enabled", cfg.HasPlacesKey()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application context outlives startup; it stops background middleware
	// housekeeping on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

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

	// ── 6. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Directory Tiers ────────────────────────────────────────────────
	providerRepository := provider.NewRepository(pool)
	facetEngine := facet.NewEngine(facet.NewPostgresLookup(pool))
	providerService := provider.NewService(providerRepository, facetEngine)

	var placesClient *places.Client
	if cfg.HasPlacesKey() {
		placesClient = places.NewClient(cfg.GoogleMapsAPIKey, log)
	}

	resolver := fallback.NewResolver(log)
	if cfg.DataBackend == config.BackendPostgres {
		resolver.AddPrimary("postgres", providerService)
	}
	if placesClient != nil {
		resolver.Add("places", fallback.NewPlacesSource(placesClient))
	}
	resolver.Add("static", fallback.NewStaticSource())

	directoryHandler := provider.NewHandler(resolver)

	// ── 9. Reviews, Audit, Portal ─────────────────────────────────────────
	auditService := audit.NewService(audit.NewRepository(pool))

	reviewService := review.NewService(review.NewRepository(pool), providerRepository, auditService)
	reviewHandler := review.NewHandler(reviewService)

	profileRepository := profile.NewRepository(pool)
	profileService := profile.NewService(profileRepository, providerService, auditService)
	portalHandler := profile.NewHandler(profileService, reviewService, auditService)

	// ── 10. Auth ──────────────────────────────────────────────────────────
	authService := auth.NewService(auth.NewRedisTokenStore(rdb), profileRepository, jwtSvc, log)
	authHandler := auth.NewHandler(authService)

	// ── 11. Ingestion Job ─────────────────────────────────────────────────
	var searcher ingest.PlaceSearcher
	if placesClient != nil {
		searcher = placesClient
	}
	syncer := ingest.NewSyncer(searcher, providerRepository, log)
	ingestHandler := ingest.NewHandler(syncer, cfg.SyncSecret)

	// ── 12. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Directory: directoryHandler,
		Review:    reviewHandler,
		Portal:    portalHandler,
		Ingest:    ingestHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 13. Graceful Shutdown ─────────────────────────────────────────────
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
