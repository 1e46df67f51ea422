// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/metrics"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// BreakerClient wraps a TautulliClientInterface with the circuit breaker
// pattern, preventing cascading failures when the analytics API is
// unavailable or slow.
//
// DETERMINISM NOTE: The circuit breaker uses real time (via sony/gobreaker)
// for its interval and timeout calculations. This is intentional for
// production resilience: the timing determines when to recover from
// failures, not data integrity. Tests should mock the underlying client,
// not the breaker.
type BreakerClient struct {
	client TautulliClientInterface
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewBreakerClient wraps client with a circuit breaker.
//
// Circuit breaker configuration:
//   - Max 3 concurrent requests in half-open state
//   - 1 minute measurement window
//   - 2 minute timeout before attempting recovery
//   - Opens after 60% failure rate with minimum 10 requests
func NewBreakerClient(client TautulliClientInterface) *BreakerClient {
	cbName := "tautulli-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		// Opens when failure rate >= 60% with minimum 10 requests
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false // Need at least 10 requests for statistical significance
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6

			if shouldTrip {
				logging.Warn().Uint32("failures", counts.TotalFailures).Float64("failure_rate", failureRatio*100).Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &BreakerClient{
		client: client,
		cb:     cb,
		name:   cbName,
	}
}

// execute wraps a Tautulli API call with circuit breaker protection.
func (bc *BreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := bc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "failure").Inc()
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(bc.name, "success").Inc()
	return result, nil
}

// castResult safely type-casts the circuit breaker result.
func castResult[T any](result interface{}, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	typed, ok := result.(*T)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// stateToFloat converts circuit breaker state to a numeric value for metrics.
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to a string for logging.
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Ping verifies connectivity with circuit breaker protection.
func (bc *BreakerClient) Ping(ctx context.Context) error {
	_, err := bc.execute(func() (interface{}, error) {
		return nil, bc.client.Ping(ctx)
	})
	return err
}

// GetLibraries retrieves library sections with circuit breaker protection.
func (bc *BreakerClient) GetLibraries(ctx context.Context) (*tautulli.TautulliLibraries, error) {
	return castResult[tautulli.TautulliLibraries](bc.execute(func() (interface{}, error) {
		return bc.client.GetLibraries(ctx)
	}))
}

// GetRecentlyAdded retrieves recently added content with circuit breaker protection.
func (bc *BreakerClient) GetRecentlyAdded(ctx context.Context, count int, sectionID int) (*tautulli.TautulliRecentlyAdded, error) {
	return castResult[tautulli.TautulliRecentlyAdded](bc.execute(func() (interface{}, error) {
		return bc.client.GetRecentlyAdded(ctx, count, sectionID)
	}))
}

// GetMetadata retrieves item metadata with circuit breaker protection.
func (bc *BreakerClient) GetMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadata, error) {
	return castResult[tautulli.TautulliMetadata](bc.execute(func() (interface{}, error) {
		return bc.client.GetMetadata(ctx, ratingKey)
	}))
}

// GetUsersTable retrieves the users table with circuit breaker protection.
func (bc *BreakerClient) GetUsersTable(ctx context.Context) (*tautulli.TautulliUsersTable, error) {
	return castResult[tautulli.TautulliUsersTable](bc.execute(func() (interface{}, error) {
		return bc.client.GetUsersTable(ctx)
	}))
}

// GetHistory retrieves playback history with circuit breaker protection.
func (bc *BreakerClient) GetHistory(ctx context.Context, userID int, length int) (*tautulli.TautulliHistory, error) {
	return castResult[tautulli.TautulliHistory](bc.execute(func() (interface{}, error) {
		return bc.client.GetHistory(ctx, userID, length)
	}))
}

// GetActivity retrieves the current sessions snapshot with circuit breaker protection.
func (bc *BreakerClient) GetActivity(ctx context.Context) (*tautulli.TautulliActivity, error) {
	return castResult[tautulli.TautulliActivity](bc.execute(func() (interface{}, error) {
		return bc.client.GetActivity(ctx)
	}))
}
