// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package cache provides the TTL caches and background refresh coordination
// used by the response assembler.
//
// Expiry is strictly lazy: an expired entry is evicted by the Get, Keys, or
// Stats call that observes it. There is no background sweeper, no capacity
// bound, and no LRU eviction. The mutation discipline is last-write-wins.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/tabularium/internal/metrics"
)

// Entry represents a cached item with its expiration time.
type Entry struct {
	Data      interface{}
	ExpiresAt time.Time
}

// Stats is a point-in-time snapshot of a cache.
type Stats struct {
	Size      int      `json:"size"`
	Keys      []string `json:"keys"`
	Hits      int64    `json:"hits"`
	Misses    int64    `json:"misses"`
	Evictions int64    `json:"evictions"`
}

// Cache is a thread-safe in-memory cache with per-entry TTL and lazy expiry.
//
// Each instance has a name (used as the Prometheus label) and a default TTL
// applied by Set; SetWithTTL overrides the TTL per entry.
type Cache struct {
	mu      sync.RWMutex
	name    string
	entries map[string]Entry
	ttl     time.Duration

	hits      int64
	misses    int64
	evictions int64
}

// New creates a named cache with the given default TTL.
//
// Example:
//
//	media := cache.New("media", 10*time.Minute)
//	media.Set("section-items:1:20", items)
//	if v, ok := media.Get("section-items:1:20"); ok { ... }
func New(name string, ttl time.Duration) *Cache {
	return &Cache{
		name:    name,
		entries: make(map[string]Entry),
		ttl:     ttl,
	}
}

// Get retrieves a value by key. An entry past its expiry is removed and
// reported as a miss.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(entry.ExpiresAt) {
		c.mu.Lock()
		// Re-check under the write lock: a concurrent Set may have
		// replaced the entry since the read above.
		if current, ok := c.entries[key]; ok && time.Now().After(current.ExpiresAt) {
			delete(c.entries, key)
			c.evictions++
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		}
		c.mu.Unlock()
		c.recordMiss()
		return nil, false
	}

	c.recordHit()
	return entry.Data, true
}

// Set stores a value with the cache's default TTL, overwriting any
// existing entry.
func (c *Cache) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = Entry{
		Data:      value,
		ExpiresAt: time.Now().Add(ttl),
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(size))
}

// Delete removes an entry by key. No-op for absent keys.
// Returns true if an entry was removed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	_, existed := c.entries[key]
	if existed {
		delete(c.entries, key)
		c.evictions++
	}
	size := len(c.entries)
	c.mu.Unlock()

	if existed {
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		metrics.CacheEntries.WithLabelValues(c.name).Set(float64(size))
	}
	return existed
}

// Clear removes all entries and returns the number removed.
func (c *Cache) Clear() int {
	c.mu.Lock()
	removed := len(c.entries)
	c.entries = make(map[string]Entry)
	c.evictions += int64(removed)
	c.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(c.name).Set(0)
	return removed
}

// Keys returns the keys of all live entries, evicting any expired ones
// it encounters.
func (c *Cache) Keys() []string {
	now := time.Now()

	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
			c.evictions++
			metrics.CacheEvictions.WithLabelValues(c.name).Inc()
			continue
		}
		keys = append(keys, key)
	}
	size := len(c.entries)
	c.mu.Unlock()

	metrics.CacheEntries.WithLabelValues(c.name).Set(float64(size))
	return keys
}

// Stats returns a snapshot of the cache including its live keys.
func (c *Cache) Stats() Stats {
	keys := c.Keys()

	c.mu.RLock()
	defer c.mu.RUnlock()
	return Stats{
		Size:      len(keys),
		Keys:      keys,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// HitRate returns the cache hit rate as a percentage.
func (c *Cache) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}

// Name returns the cache's name.
func (c *Cache) Name() string {
	return c.name
}

func (c *Cache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	metrics.CacheHits.WithLabelValues(c.name).Inc()
}

func (c *Cache) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}
