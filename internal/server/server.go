/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package server is the delivery layer: authenticated static serving of the
// content store (manifests and segments) plus the small JSON API the player
// needs — server time for clock sync, the asset catalog, and resolved
// channel guides. The scheduling engine itself knows nothing about HTTP.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/friendsincode/grimnir_tv/internal/auth"
	"github.com/friendsincode/grimnir_tv/internal/catalog"
	"github.com/friendsincode/grimnir_tv/internal/config"
	"github.com/friendsincode/grimnir_tv/internal/telemetry"
)

// Server bundles the HTTP router and its collaborators.
type Server struct {
	cfg      *config.Config
	logger   zerolog.Logger
	router   chi.Router
	catalog  *catalog.Catalog
	location *time.Location
}

// New scans the content store, resolves the configured timezone, and builds
// the router.
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	location, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.DefaultTimezone, err)
	}

	cat, err := catalog.Scan(cfg.ContentRoot, logger)
	if err != nil {
		return nil, fmt.Errorf("scan content store: %w", err)
	}
	logger.Info().Int("assets", cat.Len()).Str("root", cfg.ContentRoot).Msg("content store scanned")

	s := &Server{
		cfg:      cfg,
		logger:   logger.With().Str("component", "server").Logger(),
		catalog:  cat,
		location: location,
	}

	signingKey := []byte(cfg.JWTSigningKey)
	if len(signingKey) == 0 {
		// Sessions die with the process; fine for development, configure
		// GRIMNIRTV_JWT_SIGNING_KEY for anything shared.
		signingKey = []byte(uuid.NewString())
		s.logger.Warn().Msg("no JWT signing key configured, sessions will not survive restarts")
	}
	if cfg.AuthToken == "" && cfg.AuthPassword == "" && cfg.AuthPasswordHash == "" {
		s.logger.Warn().Msg("delivery auth unconfigured, serving without access control")
	}

	gate := auth.Middleware(auth.Options{
		Username:     cfg.AuthUsername,
		Password:     cfg.AuthPassword,
		PasswordHash: cfg.AuthPasswordHash,
		Token:        cfg.AuthToken,
		SigningKey:   signingKey,
	})

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(telemetry.MetricsMiddleware)
	}
	r.Use(corsHeaders)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", telemetry.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(gate)
		r.Get("/api/time", s.handleTime)
		r.Get("/api/catalog", s.handleCatalog)
		r.Get("/api/channels", s.handleChannels)
		r.Get("/api/channels/{channel}/guide", s.handleGuide)
		r.Handle("/*", http.FileServer(http.Dir(cfg.ContentRoot)))
	})

	s.router = r
	return s, nil
}

// Router exposes the handler tree (used by tests and HTTPServer).
func (s *Server) Router() http.Handler {
	return s.router
}

// HTTPServer wraps the router in an http.Server bound per config.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.cfg.HTTPBind, s.cfg.HTTPPort),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// corsHeaders mirrors what the player frontend expects for ranged segment
// fetches from another origin.
func corsHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, HEAD, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Range")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Length, Content-Range")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
