// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain route groups into a runnable [http.Server].

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

	"github.com/raduga-center/raduga/internal/platform/config"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/metrics"
	"github.com/raduga-center/raduga/internal/platform/middleware"
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

// # Route Registry

// Routes groups every mounted route subtree.
//
// New resources add a field here; no other change to server.go is required.
type Routes struct {
	// Liveness is the /health handler, 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles login and token refresh.
	Auth chi.Router

	// Patients manages patient records.
	Patients chi.Router

	// Documents manages patient documents and downloads.
	Documents chi.Router

	// Users manages staff accounts and profile photos.
	Users chi.Router

	// Roles manages the staff role dictionary.
	Roles chi.Router

	// Statistics serves the usage statistics series.
	Statistics chi.Router
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, routes Routes) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(metrics.Instrument)
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated probes for container orchestration and scraping.
	r.Get("/health", routes.Liveness)
	r.Get("/ready", routes.Readiness)
	r.Handle("/metrics", metrics.Handler())

	// # Application API
	// Resource route groups mounted under the versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", routes.Auth)
		api.Mount("/patients", routes.Patients)
		api.Mount("/documents", routes.Documents)
		api.Mount("/users", routes.Users)
		api.Mount("/roles", routes.Roles)
		api.Mount("/statistics", routes.Statistics)
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
