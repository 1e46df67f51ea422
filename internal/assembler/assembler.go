// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package assembler orchestrates dashboard responses: it fans out to the
// upstream clients through the TTL caches, sorts and truncates the merged
// results, applies the user-authored format templates, and emits payloads
// carrying both formatted and raw views.
//
// Failure semantics: an upstream failure while listing sections fails the
// request; per-section and per-item failures degrade gracefully (skipped
// section, "Unknown" metadata) and are only logged. Partial data is always
// preferred over hard failure.
package assembler

import (
	"strconv"

	"github.com/tomtom215/tabularium/internal/cache"
	"github.com/tomtom215/tabularium/internal/formats"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/template"
	"github.com/tomtom215/tabularium/internal/upstream"
)

// mediaTypeSections maps the dashboard media-type families to upstream
// library section types.
var mediaTypeSections = map[string]string{
	"movies": "movie",
	"shows":  "show",
	"music":  "artist",
}

// Assembler builds dashboard payloads from the upstream clients, the TTL
// caches, and the format store. It is constructed once in main and shared
// by all request handlers.
type Assembler struct {
	tautulli  upstream.TautulliClientInterface
	plex      upstream.PlexClientInterface
	caches    *cache.Set
	refresher *cache.RefreshCoordinator
	store     *formats.Store
}

// New creates an assembler. plex may be nil, in which case section item
// listings come from Tautulli.
func New(
	tautulli upstream.TautulliClientInterface,
	plex upstream.PlexClientInterface,
	caches *cache.Set,
	refresher *cache.RefreshCoordinator,
	store *formats.Store,
) *Assembler {
	return &Assembler{
		tautulli:  tautulli,
		plex:      plex,
		caches:    caches,
		refresher: refresher,
		store:     store,
	}
}

// applyFormats renders every matching format definition against the item,
// returning the formatted map and the names of the formats that applied.
func applyFormats(defs []models.FormatDefinition, mediaType string, item *models.MediaItem) (map[string]string, []string) {
	formatted := make(map[string]string)
	var applied []string
	for i := range defs {
		def := &defs[i]
		if !def.AppliesTo(mediaType, item.SectionID) {
			continue
		}
		formatted[def.Name] = template.Render(def.Template, item.Fields)
		applied = append(applied, def.Name)
	}
	return formatted, applied
}

// mergeApplied folds per-item applied format names into a stable unique list.
func mergeApplied(all []string, names []string, seen map[string]bool) []string {
	for _, name := range names {
		if !seen[name] {
			seen[name] = true
			all = append(all, name)
		}
	}
	return all
}

// mediaTypeFamily maps a raw upstream media type to its dashboard family.
// Unknown types map to the empty family, which only untyped formats match.
func mediaTypeFamily(wireType string) string {
	switch wireType {
	case "movie":
		return "movies"
	case "show", "season", "episode":
		return "shows"
	case "artist", "album", "track":
		return "music"
	default:
		return ""
	}
}

// sectionIDString renders a numeric upstream section id the way cache keys
// and format definitions reference it.
func sectionIDString(id int) string {
	return strconv.Itoa(id)
}
