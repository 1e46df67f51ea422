// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in
// order of priority. The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/tabularium/config.yaml",
	"/etc/tabularium/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// envPrefix is the prefix for all Tabularium environment variables.
const envPrefix = "TABULARIUM_"

// envKeyMap maps environment variable names (without prefix) to config keys.
// Explicit mapping is required because several key names contain underscores
// that a mechanical SNAKE_CASE-to-dotted translation would split incorrectly.
var envKeyMap = map[string]string{
	"SERVER_HOST":                  "server.host",
	"SERVER_PORT":                  "server.port",
	"SERVER_TIMEOUT":               "server.timeout",
	"SERVER_SHUTDOWN_TIMEOUT":      "server.shutdown_timeout",
	"PLEX_ENABLED":                 "plex.enabled",
	"PLEX_URL":                     "plex.url",
	"PLEX_TOKEN":                   "plex.token",
	"TAUTULLI_URL":                 "tautulli.url",
	"TAUTULLI_API_KEY":             "tautulli.api_key",
	"TAUTULLI_REQUESTS_PER_SECOND": "tautulli.requests_per_second",
	"CACHE_MEDIA_TTL":              "cache.media_ttl",
	"CACHE_METADATA_TTL":           "cache.metadata_ttl",
	"CACHE_HISTORY_TTL":            "cache.history_ttl",
	"FORMATS_PATH":                 "formats.path",
	"API_CORS_ORIGINS":             "api.cors_origins",
	"API_RATE_LIMIT_REQUESTS":      "api.rate_limit_requests",
	"API_RATE_LIMIT_WINDOW":        "api.rate_limit_window",
	"API_RATE_LIMIT_DISABLED":      "api.rate_limit_disabled",
	"API_DEFAULT_COUNT":            "api.default_count",
	"API_MAX_COUNT":                "api.max_count",
	"LOG_LEVEL":                    "logging.level",
	"LOG_FORMAT":                   "logging.format",
	"LOG_CALLER":                   "logging.caller",
}

// Load builds the configuration from defaults, an optional YAML config
// file, and environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: built-in defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	// Layer 2: optional YAML config file
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// Unmapped variables are ignored; returning "" skips the key.
		return envKeyMap[s[len(envPrefix):]]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, honoring
// the CONFIG_PATH override. Returns empty string when no file exists.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
