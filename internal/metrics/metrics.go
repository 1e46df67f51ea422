// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package metrics exposes Prometheus instrumentation for Tabularium:
// API endpoint latency and throughput, cache efficiency, background refresh
// coalescing, upstream request health, and circuit breaker state.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Cache Metrics (labeled by cache name: media, metadata, history)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache entries evicted (lazy expiry and explicit deletes)",
		},
		[]string{"cache"},
	)

	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of entries per cache",
		},
		[]string{"cache"},
	)

	// Background Refresh Coordinator Metrics
	RefreshRuns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_runs_total",
			Help: "Total number of background refresh tasks started",
		},
	)

	RefreshSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_skips_total",
			Help: "Total number of background refreshes skipped because one was already pending",
		},
	)

	RefreshFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "refresh_failures_total",
			Help: "Total number of background refresh tasks that panicked or failed",
		},
	)

	// Upstream Request Metrics (labeled by backend: tautulli, plex)
	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "upstream_requests_total",
			Help: "Total number of upstream API requests",
		},
		[]string{"backend", "result"},
	)

	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "upstream_request_duration_seconds",
			Help:    "Duration of upstream API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through the circuit breaker by outcome",
		},
		[]string{"name", "outcome"}, // outcome: success, failure, rejected
	)

	// Template Engine Metrics
	TemplateRenders = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "template_renders_total",
			Help: "Total number of template render passes",
		},
	)

	TemplateVariableErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "template_variable_errors_total",
			Help: "Total number of per-variable resolution failures recovered during rendering",
		},
	)
)
