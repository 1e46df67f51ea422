// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tabularium/internal/config"
	"github.com/tomtom215/tabularium/internal/metrics"
	"github.com/tomtom215/tabularium/internal/models"
)

// PlexClientInterface defines the media-server operations used when Plex
// is the configured source for section item listings.
type PlexClientInterface interface {
	Ping(ctx context.Context) error
	GetSections(ctx context.Context) (*models.PlexLibrarySectionsResponse, error)
	GetSectionRecentlyAdded(ctx context.Context, sectionKey string, count int) (*models.PlexSectionContentResponse, error)
}

// PlexClient is an HTTP client for the Plex Media Server API. Responses
// are MediaContainer-shaped JSON, requested via the X-Plex headers.
type PlexClient struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewPlexClient creates a Plex API client from configuration.
func NewPlexClient(cfg *config.PlexConfig) *PlexClient {
	return &PlexClient{
		baseURL: cfg.URL,
		token:   cfg.Token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// doRequest performs a GET against a Plex path and decodes the
// MediaContainer JSON body into result.
func (c *PlexClient) doRequest(ctx context.Context, path string, query url.Values, result interface{}) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Plex-Token", c.token)
	req.Header.Set("X-Plex-Product", "Tabularium")
	req.Header.Set("X-Plex-Client-Identifier", "tabularium")

	start := time.Now()
	resp, err := c.client.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues("plex").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("plex", "error").Inc()
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("plex", "error").Inc()
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", path, resp.StatusCode, string(body))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			metrics.UpstreamRequests.WithLabelValues("plex", "error").Inc()
			return fmt.Errorf("failed to decode %s response: %w", path, err)
		}
	}

	metrics.UpstreamRequests.WithLabelValues("plex", "success").Inc()
	return nil
}

// Ping verifies connectivity to the Plex server.
func (c *PlexClient) Ping(ctx context.Context) error {
	return c.doRequest(ctx, "/identity", nil, nil)
}

// GetSections retrieves the library section directory.
func (c *PlexClient) GetSections(ctx context.Context) (*models.PlexLibrarySectionsResponse, error) {
	var result models.PlexLibrarySectionsResponse
	if err := c.doRequest(ctx, "/library/sections", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSectionRecentlyAdded retrieves the most recently added items of one
// section, newest first.
func (c *PlexClient) GetSectionRecentlyAdded(ctx context.Context, sectionKey string, count int) (*models.PlexSectionContentResponse, error) {
	query := url.Values{}
	query.Set("X-Plex-Container-Start", "0")
	query.Set("X-Plex-Container-Size", strconv.Itoa(count))

	var result models.PlexSectionContentResponse
	path := fmt.Sprintf("/library/sections/%s/recentlyAdded", url.PathEscape(sectionKey))
	if err := c.doRequest(ctx, path, query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
