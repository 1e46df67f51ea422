// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package cache

import (
	"strings"
	"time"
)

// Set bundles the three process-lifetime caches. It is constructed once in
// main and passed by reference to the components that need it; nothing in
// the codebase reaches for ambient cache state.
//
// The caches have independent keyspaces and TTLs:
//   - Media: per-section item listings and assembled request payloads
//   - Metadata: per-item enrichment (resolution, rating, summary, poster)
//   - History: per-user playback history
type Set struct {
	Media    *Cache
	Metadata *Cache
	History  *Cache
}

// NewSet creates the three caches with the given TTLs.
func NewSet(mediaTTL, metadataTTL, historyTTL time.Duration) *Set {
	return &Set{
		Media:    New("media", mediaTTL),
		Metadata: New("metadata", metadataTTL),
		History:  New("history", historyTTL),
	}
}

// ByName returns the cache with the given name, or nil for unknown names.
func (s *Set) ByName(name string) *Cache {
	switch name {
	case "media":
		return s.Media
	case "metadata":
		return s.Metadata
	case "history":
		return s.History
	default:
		return nil
	}
}

// ClearAll empties every cache and returns the total number of entries removed.
func (s *Set) ClearAll() int {
	return s.Media.Clear() + s.Metadata.Clear() + s.History.Clear()
}

// ClearImages removes derived poster/image entries matching the given item
// rating key or section id. Poster entries are keyed "poster:item:<ratingKey>"
// and "poster:section:<sectionID>". An empty argument matches nothing for
// that dimension. Returns the number of entries removed.
func (s *Set) ClearImages(itemKey, sectionID string) int {
	removed := 0
	for _, c := range []*Cache{s.Media, s.Metadata} {
		for _, key := range c.Keys() {
			if !strings.HasPrefix(key, "poster:") {
				continue
			}
			if (itemKey != "" && key == "poster:item:"+itemKey) ||
				(sectionID != "" && key == "poster:section:"+sectionID) {
				if c.Delete(key) {
					removed++
				}
			}
		}
	}
	return removed
}
