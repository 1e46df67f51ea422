// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package upstream contains the HTTP clients for the two external backends:
// the Tautulli analytics API (envelope-wrapped JSON command calls) and the
// Plex media server (MediaContainer-shaped JSON). The response assembler
// only talks to these clients through their interfaces.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/tabularium/internal/config"
	"github.com/tomtom215/tabularium/internal/metrics"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// TautulliClientInterface defines the Tautulli operations the assembler
// depends on. Implementations: TautulliClient (direct) and
// BreakerClient (circuit breaker wrapped).
type TautulliClientInterface interface {
	Ping(ctx context.Context) error
	GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error)
	GetRecentlyAdded(ctx context.Context, count int, sectionID int) (*tautulli.TautulliRecentlyAdded, error)
	GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error)
	GetUsersTable(ctx context.Context) (*tautulli.TautulliUsersTable, error)
	GetHistory(ctx context.Context, userID int, length int) (*tautulli.TautulliHistory, error)
	GetActivity(ctx context.Context) (*tautulli.TautulliActivity, error)
}

// TautulliClient is an HTTP client for the Tautulli v2 API.
//
// Features:
//   - Client-side rate limiting so background refreshes cannot stampede
//     the upstream
//   - Automatic retry on HTTP 429 with exponential backoff
//     (1s, 2s, 4s, 8s, 16s delays, Retry-After honored)
//   - JSON parsing with typed response structs and envelope validation
//
// Thread safety: safe for concurrent use. Each request creates its own
// HTTP request.
//
// Example:
//
//	client := upstream.NewTautulliClient(&cfg.Tautulli)
//	if err := client.Ping(ctx); err != nil {
//	    log.Fatal("Tautulli not reachable:", err)
//	}
//	recent, err := client.GetRecentlyAdded(ctx, 20, 0)
type TautulliClient struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	limiter        *rate.Limiter
	maxRetries     int           // Maximum retries for rate limiting
	retryBaseDelay time.Duration // Base delay for exponential backoff
}

// NewTautulliClient creates a Tautulli API client from configuration.
//
// The client is configured with a 30-second HTTP timeout, up to 5 retries
// on HTTP 429, and a token-bucket limiter at cfg.RequestsPerSecond (burst
// of the same size; a non-positive setting disables client-side limiting).
func NewTautulliClient(cfg *config.TautulliConfig) *TautulliClient {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := int(cfg.RequestsPerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &TautulliClient{
		baseURL: cfg.URL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:        limiter,
		maxRetries:     5,
		retryBaseDelay: 1 * time.Second,
	}
}

// doRequest performs an HTTP GET with client-side rate limiting and
// automatic 429 backoff. The context is used for cancellation during
// limiter and backoff waits.
func (c *TautulliClient) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("HTTP request failed: %w", err)
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		// Rate limited (HTTP 429) - close body and retry with backoff
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			lastErr = fmt.Errorf("rate limit exceeded after %d retries (HTTP 429)", c.maxRetries)
			break
		}

		// Exponential backoff delay: 1s, 2s, 4s, 8s, 16s
		delay := c.retryBaseDelay * time.Duration(1<<uint(attempt))

		// Retry-After header (RFC 6585) takes precedence
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				delay = seconds
			}
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, lastErr
}

// makeRequest handles the common Tautulli API request boilerplate: it
// builds the command URL, performs the request, checks HTTP status,
// decodes the JSON body, and validates the response envelope.
//
// The result parameter must be a pointer to a struct with a Response field
// carrying Result and Message, which every type in models/tautulli follows.
func (c *TautulliClient) makeRequest(ctx context.Context, cmd string, params url.Values, result interface{}) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", cmd)

	reqURL := fmt.Sprintf("%s/api/v2?%s", c.baseURL, params.Encode())

	start := time.Now()
	resp, err := c.doRequest(ctx, reqURL)
	metrics.UpstreamRequestDuration.WithLabelValues("tautulli").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("tautulli", "error").Inc()
		return fmt.Errorf("failed to make %s request: %w", cmd, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.UpstreamRequests.WithLabelValues("tautulli", "error").Inc()
		body := readBodyForError(resp.Body)
		return fmt.Errorf("%s request failed with status %d: %s", cmd, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		metrics.UpstreamRequests.WithLabelValues("tautulli", "error").Inc()
		return fmt.Errorf("failed to decode %s response: %w", cmd, err)
	}

	if err := validateEnvelope(result, cmd); err != nil {
		metrics.UpstreamRequests.WithLabelValues("tautulli", "error").Inc()
		return err
	}

	metrics.UpstreamRequests.WithLabelValues("tautulli", "success").Inc()
	return nil
}

// readBodyForError reads up to 1KB of a response body for error context.
func readBodyForError(r io.Reader) []byte {
	body, _ := io.ReadAll(io.LimitReader(r, 1024))
	return body
}

// validateEnvelope checks whether the Tautulli API returned success. All
// Tautulli responses share the response.result wrapper; reflection reaches
// the Response field so one validator covers every typed response struct.
func validateEnvelope(result interface{}, cmd string) error {
	v := reflect.ValueOf(result)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	responseField := v.FieldByName("Response")
	if !responseField.IsValid() {
		return nil
	}

	resultField := responseField.FieldByName("Result")
	if !resultField.IsValid() || resultField.Kind() != reflect.String {
		return nil
	}

	if resultField.String() != "success" {
		msg := "unknown error"
		messageField := responseField.FieldByName("Message")
		if messageField.IsValid() && messageField.Kind() == reflect.Ptr && !messageField.IsNil() {
			if messageField.Elem().Kind() == reflect.String {
				msg = messageField.Elem().String()
			}
		}
		return fmt.Errorf("%s request failed: %s", cmd, msg)
	}

	return nil
}

// Ping verifies connectivity to the Tautulli API.
func (c *TautulliClient) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("apikey", c.apiKey)
	params.Set("cmd", "arnold")

	reqURL := fmt.Sprintf("%s/api/v2?%s", c.baseURL, params.Encode())

	resp, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("failed to ping Tautulli: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("Tautulli ping failed with status: %d", resp.StatusCode)
	}

	return nil
}

// GetLibraries retrieves all library sections.
func (c *TautulliClient) GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error) {
	var result tautulli.TautulliLibraries
	if err := c.makeRequest(ctx, "get_libraries", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetRecentlyAdded retrieves recently added items. A sectionID of 0 queries
// across all sections.
func (c *TautulliClient) GetRecentlyAdded(ctx context.Context, count int, sectionID int) (*tautulli.TautulliRecentlyAdded, error) {
	params := url.Values{}
	params.Set("count", strconv.Itoa(count))
	if sectionID > 0 {
		params.Set("section_id", strconv.Itoa(sectionID))
	}

	var result tautulli.TautulliRecentlyAdded
	if err := c.makeRequest(ctx, "get_recently_added", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetMetadata retrieves full metadata for one item by rating key.
func (c *TautulliClient) GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error) {
	params := url.Values{}
	params.Set("rating_key", ratingKey)

	var result tautulli.TautulliMetadata
	if err := c.makeRequest(ctx, "get_metadata", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetUsersTable retrieves the users table with play counts and last-seen
// timestamps.
func (c *TautulliClient) GetUsersTable(ctx context.Context) (*tautulli.TautulliUsersTable, error) {
	params := url.Values{}
	params.Set("order_column", "last_seen")
	params.Set("order_dir", "desc")

	var result tautulli.TautulliUsersTable
	if err := c.makeRequest(ctx, "get_users_table", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetHistory retrieves playback history. A userID of 0 queries across all
// users; length bounds the number of rows.
func (c *TautulliClient) GetHistory(ctx context.Context, userID int, length int) (*tautulli.TautulliHistory, error) {
	params := url.Values{}
	params.Set("order_column", "date")
	params.Set("order_dir", "desc")
	params.Set("length", strconv.Itoa(length))
	if userID > 0 {
		params.Set("user_id", strconv.Itoa(userID))
	}

	var result tautulli.TautulliHistory
	if err := c.makeRequest(ctx, "get_history", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetActivity retrieves the current streaming sessions snapshot.
func (c *TautulliClient) GetActivity(ctx context.Context) (*tautulli.TautulliActivity, error) {
	var result tautulli.TautulliActivity
	if err := c.makeRequest(ctx, "get_activity", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
