// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package config provides layered configuration loading via Koanf v2.
//
// Configuration sources, lowest to highest priority:
//   - Built-in defaults
//   - Config file (config.yaml, override path with CONFIG_PATH)
//   - Environment variables (TABULARIUM_* prefix)
package config

import "time"

// Config is the root configuration for the Tabularium server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Plex     PlexConfig     `koanf:"plex"`
	Tautulli TautulliConfig `koanf:"tautulli"`
	Cache    CacheConfig    `koanf:"cache"`
	Formats  FormatsConfig  `koanf:"formats"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// PlexConfig holds Plex Media Server connection settings.
// The Plex backend serves section item listings when enabled; library
// discovery and history always go through Tautulli.
type PlexConfig struct {
	Enabled bool   `koanf:"enabled"`
	URL     string `koanf:"url"`
	Token   string `koanf:"token"`
}

// TautulliConfig holds Tautulli connection settings. Tautulli is the
// primary upstream: sections, recently added items, item metadata, users,
// history, and activity all come from its api/v2 surface.
type TautulliConfig struct {
	URL    string `koanf:"url"`
	APIKey string `koanf:"api_key"`

	// RequestsPerSecond caps client-side request rate so background
	// refreshes cannot stampede the upstream. 0 disables the limiter.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// CacheConfig holds per-cache TTLs. The three caches are independent:
// media (per-section item listings), metadata (per-item enrichment),
// and history (per-user playback history).
type CacheConfig struct {
	MediaTTL    time.Duration `koanf:"media_ttl"`
	MetadataTTL time.Duration `koanf:"metadata_ttl"`
	HistoryTTL  time.Duration `koanf:"history_ttl"`
}

// FormatsConfig holds settings for the persisted format definition store.
type FormatsConfig struct {
	// Path is the flat JSON file holding user-authored format definitions.
	Path string `koanf:"path"`
}

// APIConfig holds settings for the HTTP API surface.
type APIConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// DefaultCount and MaxCount bound the item count of listing endpoints.
	DefaultCount int `koanf:"default_count"`
	MaxCount     int `koanf:"max_count"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3861,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Plex: PlexConfig{
			Enabled: false,
			URL:     "",
			Token:   "",
		},
		Tautulli: TautulliConfig{
			URL:               "",
			APIKey:            "",
			RequestsPerSecond: 4,
		},
		Cache: CacheConfig{
			MediaTTL:    10 * time.Minute,
			MetadataTTL: 30 * time.Minute,
			HistoryTTL:  10 * time.Minute,
		},
		Formats: FormatsConfig{
			Path: "/data/formats.json",
		},
		API: APIConfig{
			CORSOrigins:       []string{},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
			DefaultCount:      20,
			MaxCount:          100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
