// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/tabularium/internal/config"
	"github.com/tomtom215/tabularium/internal/middleware"
)

// NewRouter builds the chi router with the full middleware stack and all
// routes mounted under /api/v1. Health probes and Prometheus metrics live
// outside the versioned prefix.
func NewRouter(h *Handlers, cfg *config.APIConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "If-None-Match"},
		ExposedHeaders: []string{"ETag", "X-Request-ID"},
		MaxAge:         86400,
	}))
	r.Get("/livez", h.GetLiveness)
	r.Get("/readyz", h.GetReadiness)
	r.Handle("/metrics", promhttp.Handler())

	// Rate limiting covers only the versioned API, never the probes.
	r.Route("/api/v1", func(r chi.Router) {
		if !cfg.RateLimitDisabled {
			r.Use(httprate.Limit(
				cfg.RateLimitRequests,
				cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			))
		}

		r.Get("/health", h.GetHealth)

		r.Get("/recently-added", h.GetRecentlyAdded)
		r.Get("/history", h.GetHistory)
		r.Get("/users", h.GetUsers)
		r.Get("/activity", h.GetActivity)

		r.Get("/formats", h.GetFormats)
		r.Post("/formats", h.SaveFormats)

		r.Post("/cache/clear", h.ClearCache)
		r.Post("/cache/clear/{name}", h.ClearCacheNamed)
		r.Post("/cache/clear-images", h.ClearImages)
	})

	return r
}
