// Copyright (c) 2026 CareFinder. All rights reserved.
// Author: dev@carefinder.au

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carefinder-au/carefinder/internal/directory/provider"
	"github.com/carefinder-au/carefinder/internal/directory/review"
	"github.com/carefinder-au/carefinder/internal/ingest"
	"github.com/carefinder-au/carefinder/internal/platform/config"
	"github.com/carefinder-au/carefinder/internal/platform/constants"
	"github.com/carefinder-au/carefinder/internal/platform/middleware"
	"github.com/carefinder-au/carefinder/internal/users/auth"
	"github.com/carefinder-au/carefinder/internal/users/profile"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles magic-link sign-in.
	Auth *auth.Handler

	// Directory serves the public provider search, detail, and filters.
	Directory *provider.Handler

	// Review serves public review submission and the moderation queue.
	Review *review.Handler

	// Portal serves authenticated provider-portal routes.
	Portal *profile.Handler

	// Ingest exposes the scheduled place-ingestion trigger.
	Ingest *ingest.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {

		// The public directory subtree is composed here: review submission
		// nests under provider slugs but belongs to another domain.
		api.Route("/providers", func(public chi.Router) {
			public.Get("/", h.Directory.SearchProviders)
			public.Get("/{slug}", h.Directory.GetProvider)
			public.Get("/{slug}/reviews", h.Review.ListApproved)
			public.Post("/{slug}/reviews", h.Review.Submit)
		})
		api.Get("/filters", h.Directory.GetFilters)

		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/portal", h.Portal.Routes())
		api.Mount("/moderation", h.Review.ModerationRoutes())
		api.Mount("/jobs", h.Ingest.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
