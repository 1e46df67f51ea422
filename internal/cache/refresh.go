// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/metrics"
)

// RefreshCoordinator deduplicates in-flight background refreshes per cache
// key. It lets a cache-hit response be served immediately while a single
// background task repopulates the entry for the next caller, without a
// refresh storm when many requests arrive concurrently for the same stale
// key.
//
// The pending map is not a lock: it never blocks a caller, it only skips.
// The marker is removed unconditionally when the work finishes, whether it
// succeeded, failed, or panicked.
type RefreshCoordinator struct {
	mu      sync.Mutex
	pending map[string]time.Time
}

// NewRefreshCoordinator creates an empty coordinator.
func NewRefreshCoordinator() *RefreshCoordinator {
	return &RefreshCoordinator{
		pending: make(map[string]time.Time),
	}
}

// Refresh schedules work for the given cache key on a new goroutine and
// returns true. If a refresh for the key is already pending, it returns
// false without invoking work.
//
// The work function is responsible for fetching from upstream and writing
// through to the cache. Its failure is logged, never surfaced: the caller
// has already been answered from cache by the time the work runs.
func (rc *RefreshCoordinator) Refresh(key string, work func()) bool {
	rc.mu.Lock()
	if _, inFlight := rc.pending[key]; inFlight {
		rc.mu.Unlock()
		metrics.RefreshSkips.Inc()
		return false
	}
	rc.pending[key] = time.Now()
	rc.mu.Unlock()

	metrics.RefreshRuns.Inc()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				metrics.RefreshFailures.Inc()
				logging.Error().Str("key", key).Interface("panic", r).Msg("Background refresh panicked")
			}
			rc.release(key)
		}()
		work()
	}()

	return true
}

// Pending returns the number of refreshes currently in flight.
func (rc *RefreshCoordinator) Pending() int {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return len(rc.pending)
}

// PendingSince returns the start time of the pending refresh for key,
// or the zero time if none is in flight.
func (rc *RefreshCoordinator) PendingSince(key string) time.Time {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.pending[key]
}

func (rc *RefreshCoordinator) release(key string) {
	rc.mu.Lock()
	delete(rc.pending, key)
	rc.mu.Unlock()
}
