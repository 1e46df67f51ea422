// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a default config with the required upstream settings filled in.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Tautulli.URL = "http://localhost:8181"
	cfg.Tautulli.APIKey = "abc123"
	return cfg
}

func TestDefaultConfigTTLs(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Cache.MediaTTL != 10*time.Minute {
		t.Errorf("expected media TTL 10m, got %s", cfg.Cache.MediaTTL)
	}
	if cfg.Cache.MetadataTTL != 30*time.Minute {
		t.Errorf("expected metadata TTL 30m, got %s", cfg.Cache.MetadataTTL)
	}
	if cfg.Cache.HistoryTTL != 10*time.Minute {
		t.Errorf("expected history TTL 10m, got %s", cfg.Cache.HistoryTTL)
	}
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateRequiresTautulli(t *testing.T) {
	cfg := validConfig()
	cfg.Tautulli.URL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing tautulli.url")
	}

	cfg = validConfig()
	cfg.Tautulli.APIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing tautulli.api_key")
	}
}

func TestValidateRejectsBadURLs(t *testing.T) {
	tests := []string{
		"localhost:8181",         // missing scheme
		"ftp://localhost",        // wrong scheme
		"http://",                // missing host
		"http://localhost:8181/", // trailing slash
	}

	for _, raw := range tests {
		cfg := validConfig()
		cfg.Tautulli.URL = raw
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for URL %q", raw)
		}
	}
}

func TestValidatePlexRequiresTokenWhenEnabled(t *testing.T) {
	cfg := validConfig()
	cfg.Plex.Enabled = true
	cfg.Plex.URL = "http://localhost:32400"
	cfg.Plex.Token = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing plex token")
	}
	if !strings.Contains(err.Error(), "plex.token") {
		t.Errorf("expected plex.token in error, got %v", err)
	}
}

func TestValidateCountBounds(t *testing.T) {
	cfg := validConfig()
	cfg.API.MaxCount = cfg.API.DefaultCount - 1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when max_count < default_count")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TABULARIUM_TAUTULLI_URL", "http://tautulli:8181")
	t.Setenv("TABULARIUM_TAUTULLI_API_KEY", "env-key")
	t.Setenv("TABULARIUM_SERVER_PORT", "4000")
	t.Setenv("TABULARIUM_CACHE_MEDIA_TTL", "5m")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Tautulli.URL != "http://tautulli:8181" {
		t.Errorf("expected env URL, got %q", cfg.Tautulli.URL)
	}
	if cfg.Server.Port != 4000 {
		t.Errorf("expected port 4000, got %d", cfg.Server.Port)
	}
	if cfg.Cache.MediaTTL != 5*time.Minute {
		t.Errorf("expected media TTL 5m, got %s", cfg.Cache.MediaTTL)
	}
	// Unset values keep defaults.
	if cfg.Cache.MetadataTTL != 30*time.Minute {
		t.Errorf("expected default metadata TTL, got %s", cfg.Cache.MetadataTTL)
	}
}
