// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for errors that would prevent the
// server from operating. It returns the first problem found with enough
// context to correct it.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}

	if c.Tautulli.URL == "" {
		return fmt.Errorf("tautulli.url is required (set TABULARIUM_TAUTULLI_URL)")
	}
	if err := validateURL(c.Tautulli.URL, "tautulli.url"); err != nil {
		return err
	}
	if c.Tautulli.APIKey == "" {
		return fmt.Errorf("tautulli.api_key is required (set TABULARIUM_TAUTULLI_API_KEY)")
	}

	if c.Plex.Enabled {
		if c.Plex.URL == "" {
			return fmt.Errorf("plex.url is required when plex.enabled is true")
		}
		if err := validateURL(c.Plex.URL, "plex.url"); err != nil {
			return err
		}
		if c.Plex.Token == "" {
			return fmt.Errorf("plex.token is required when plex.enabled is true")
		}
	}

	if c.Cache.MediaTTL <= 0 || c.Cache.MetadataTTL <= 0 || c.Cache.HistoryTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive (media=%s metadata=%s history=%s)",
			c.Cache.MediaTTL, c.Cache.MetadataTTL, c.Cache.HistoryTTL)
	}

	if c.Formats.Path == "" {
		return fmt.Errorf("formats.path must not be empty")
	}

	if c.API.DefaultCount < 1 {
		return fmt.Errorf("api.default_count must be at least 1, got %d", c.API.DefaultCount)
	}
	if c.API.MaxCount < c.API.DefaultCount {
		return fmt.Errorf("api.max_count (%d) must be >= api.default_count (%d)",
			c.API.MaxCount, c.API.DefaultCount)
	}

	return nil
}

// validateURL ensures the value parses as an absolute http(s) URL.
func validateURL(raw, key string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is not a valid URL: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", key, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s is missing a host", key)
	}
	// Trailing slashes break naive path joining against the api/v2 endpoint.
	if strings.HasSuffix(u.Path, "/") && u.Path != "/" {
		return fmt.Errorf("%s must not end with a slash", key)
	}
	return nil
}
