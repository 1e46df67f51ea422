// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/sourcegraph/conc/pool"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// sectionFetchWorkers bounds the fan-out across library sections.
const sectionFetchWorkers = 4

// metadataFetchWorkers bounds the per-item metadata enrichment fan-out.
const metadataFetchWorkers = 8

// RecentlyAdded assembles the recently-added listing for one media-type
// family (movies, shows, music), optionally scoped to one section.
//
// The second return value reports whether the payload came from cache. A
// cache hit is returned immediately and a background refresh is scheduled
// for the next caller; a miss builds the payload inline and caches it.
func (a *Assembler) RecentlyAdded(ctx context.Context, mediaType, sectionID string, count int, forceRefresh bool) (*models.RecentlyAddedPayload, bool, error) {
	sectionType, ok := mediaTypeSections[mediaType]
	if !ok {
		return nil, false, ErrUnknownMediaType
	}

	scope := sectionID
	if scope == "" {
		scope = "all"
	}
	key := fmt.Sprintf("recently-added:%s:%s:%d", mediaType, scope, count)

	if !forceRefresh {
		if v, hit := a.caches.Media.Get(key); hit {
			if payload, ok := v.(*models.RecentlyAddedPayload); ok {
				a.scheduleRefresh(key, mediaType, sectionType, sectionID, count)
				return payload, true, nil
			}
		}
	}

	payload, err := a.buildRecentlyAdded(ctx, mediaType, sectionType, sectionID, count)
	if err != nil {
		return nil, false, err
	}
	a.caches.Media.Set(key, payload)
	return payload, false, nil
}

// scheduleRefresh fires a non-blocking background rebuild for a cache key.
// The caller has already been served; failure here is logged, never
// surfaced. The background build uses a fresh context so it is not cut
// short by the originating request ending.
func (a *Assembler) scheduleRefresh(key, mediaType, sectionType, sectionID string, count int) {
	a.refresher.Refresh(key, func() {
		payload, err := a.buildRecentlyAdded(context.Background(), mediaType, sectionType, sectionID, count)
		if err != nil {
			logging.Warn().Err(err).Str("key", key).Msg("Background refresh failed")
			return
		}
		a.caches.Media.Set(key, payload)
	})
}

// buildRecentlyAdded performs the full orchestration: section list, cached
// per-section item fetch, merge/sort/truncate, metadata enrichment, and
// format application.
func (a *Assembler) buildRecentlyAdded(ctx context.Context, mediaType, sectionType, sectionID string, count int) (*models.RecentlyAddedPayload, error) {
	libs, err := a.tautulli.GetLibraries(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "get_libraries", Err: err}
	}

	var sections []models.SectionInfo
	for _, lib := range libs.Response.Data {
		if lib.SectionType != sectionType {
			continue
		}
		id := sectionIDString(lib.SectionID)
		if sectionID != "" && sectionID != id {
			continue
		}
		sections = append(sections, models.SectionInfo{ID: id, Name: lib.SectionName, Type: lib.SectionType})
		if lib.Thumb != "" {
			a.caches.Media.Set("poster:section:"+id, lib.Thumb)
		}
	}

	if len(sections) == 0 {
		// No matching sections is an empty result, not an error.
		return &models.RecentlyAddedPayload{
			Items:          []models.AssembledItem{},
			MediaType:      mediaType,
			Sections:       []models.SectionInfo{},
			AppliedFormats: []string{},
		}, nil
	}

	// Fan out per section; a failed section is skipped, not fatal.
	results := make([][]*models.MediaItem, len(sections))
	p := pool.New().WithMaxGoroutines(sectionFetchWorkers)
	for i, sec := range sections {
		p.Go(func() {
			items, err := a.sectionItems(ctx, sec, count)
			if err != nil {
				logging.Warn().Err(err).Str("section", sec.ID).Msg("Skipping section after fetch failure")
				return
			}
			results[i] = items
		})
	}
	p.Wait()

	var items []*models.MediaItem
	for _, sectionItems := range results {
		items = append(items, sectionItems...)
	}

	// Deterministic order before any formatting: newest first, missing
	// timestamps sort last. Formatting never reorders.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].AddedAt > items[j].AddedAt
	})
	if len(items) > count {
		items = items[:count]
	}

	a.enrichItems(ctx, items)

	defs := a.store.GetFormats().RecentlyAdded
	assembled := make([]models.AssembledItem, 0, len(items))
	applied := []string{}
	appliedSeen := make(map[string]bool)
	for _, item := range items {
		formatted, names := applyFormats(defs, mediaType, item)
		applied = mergeApplied(applied, names, appliedSeen)
		assembled = append(assembled, models.AssembledItem{
			Formatted: formatted,
			Raw:       item.Fields,
		})
	}

	return &models.RecentlyAddedPayload{
		Items:          assembled,
		Count:          len(assembled),
		MediaType:      mediaType,
		Sections:       sections,
		AppliedFormats: applied,
	}, nil
}

// sectionItems fetches one section's recently-added items through the
// per-section media sub-cache. The cached entries stay pristine: callers
// always receive copies, because enrichment mutates item fields and
// concurrent builds may share a cache entry.
func (a *Assembler) sectionItems(ctx context.Context, sec models.SectionInfo, count int) ([]*models.MediaItem, error) {
	key := fmt.Sprintf("section-items:%s:%d", sec.ID, count)
	if v, hit := a.caches.Media.Get(key); hit {
		if items, ok := v.([]*models.MediaItem); ok {
			return cloneItems(items), nil
		}
	}

	items, err := a.fetchSectionItems(ctx, sec, count)
	if err != nil {
		return nil, err
	}
	a.caches.Media.Set(key, items)
	return cloneItems(items), nil
}

// cloneItems deep-copies an item slice out of the cache boundary.
func cloneItems(items []*models.MediaItem) []*models.MediaItem {
	out := make([]*models.MediaItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// fetchSectionItems pulls section items from the configured source: the
// Plex media server when available, otherwise Tautulli.
func (a *Assembler) fetchSectionItems(ctx context.Context, sec models.SectionInfo, count int) ([]*models.MediaItem, error) {
	if a.plex != nil {
		content, err := a.plex.GetSectionRecentlyAdded(ctx, sec.ID, count)
		if err != nil {
			return nil, err
		}
		items := make([]*models.MediaItem, 0, len(content.MediaContainer.Metadata))
		for i := range content.MediaContainer.Metadata {
			items = append(items, itemFromPlex(&content.MediaContainer.Metadata[i], sec))
		}
		return items, nil
	}

	id, err := strconv.Atoi(sec.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid section id %q: %w", sec.ID, err)
	}
	recent, err := a.tautulli.GetRecentlyAdded(ctx, count, id)
	if err != nil {
		return nil, err
	}
	items := make([]*models.MediaItem, 0, len(recent.Response.Data.RecentlyAdded))
	for i := range recent.Response.Data.RecentlyAdded {
		items = append(items, itemFromTautulli(&recent.Response.Data.RecentlyAdded[i], sec))
	}
	return items, nil
}

// enrichItems resolves per-item metadata (resolution, rating, summary)
// through the metadata sub-cache. Failures fall back to placeholder values
// and never fail the request.
func (a *Assembler) enrichItems(ctx context.Context, items []*models.MediaItem) {
	p := pool.New().WithMaxGoroutines(metadataFetchWorkers)
	for _, item := range items {
		p.Go(func() {
			a.enrichItem(ctx, item)
		})
	}
	p.Wait()
}

func (a *Assembler) enrichItem(ctx context.Context, item *models.MediaItem) {
	if item.RatingKey == "" {
		a.applyMetadataFallback(item)
		return
	}

	md, err := a.itemMetadata(ctx, item.RatingKey)
	if err != nil {
		logging.Debug().Err(err).Str("rating_key", item.RatingKey).Msg("Metadata enrichment failed, using placeholders")
		a.applyMetadataFallback(item)
		return
	}

	resolution := md.VideoResolution()
	if resolution == "" {
		resolution = "Unknown"
	}
	item.SetField("video_resolution", resolution)
	if md.Rating != 0 {
		item.SetField("rating", md.Rating)
	} else {
		item.SetField("rating", nil)
	}
	item.SetField("summary", md.Summary)
	if md.Duration != 0 {
		item.SetField("duration", md.Duration)
	}
	item.SetField("genres", orEmpty(md.Genres))
	item.SetField("actors", orEmpty(md.Actors))
	item.SetField("directors", orEmpty(md.Directors))

	if md.Thumb != "" {
		a.caches.Metadata.Set("poster:item:"+item.RatingKey, md.Thumb)
	}
}

func (a *Assembler) applyMetadataFallback(item *models.MediaItem) {
	item.SetField("video_resolution", "Unknown")
	item.SetField("rating", nil)
	item.SetField("summary", nil)
	item.SetField("genres", []string{})
	item.SetField("actors", []string{})
	item.SetField("directors", []string{})
}

// itemMetadata fetches one item's metadata through the metadata sub-cache.
func (a *Assembler) itemMetadata(ctx context.Context, ratingKey string) (*tautulli.TautulliMetadataData, error) {
	key := "metadata:" + ratingKey
	if v, hit := a.caches.Metadata.Get(key); hit {
		if md, ok := v.(*tautulli.TautulliMetadataData); ok {
			return md, nil
		}
	}

	resp, err := a.tautulli.GetMetadata(ctx, ratingKey)
	if err != nil {
		return nil, err
	}
	md := &resp.Response.Data
	a.caches.Metadata.Set(key, md)
	return md, nil
}

// itemFromTautulli converts a Tautulli recently-added entry to the open
// media item record, tagged with its section.
func itemFromTautulli(it *tautulli.TautulliRecentlyAddedItem, sec models.SectionInfo) *models.MediaItem {
	item := &models.MediaItem{
		RatingKey:   it.RatingKey,
		MediaType:   it.MediaType,
		Title:       it.Title,
		AddedAt:     it.AddedAt,
		SectionID:   sec.ID,
		SectionName: sec.Name,
		Fields: map[string]interface{}{
			"rating_key":              it.RatingKey,
			"parent_rating_key":       it.ParentRatingKey,
			"grandparent_rating_key":  it.GrandparentRatingKey,
			"title":                   it.Title,
			"parent_title":            it.ParentTitle,
			"grandparent_title":       it.GrandparentTitle,
			"media_type":              it.MediaType,
			"media_index":             it.MediaIndex,
			"parent_media_index":      it.ParentMediaIndex,
			"year":                    it.Year,
			"thumb":                   it.Thumb,
			"parent_thumb":            it.ParentThumb,
			"grandparent_thumb":       it.GrandparentThumb,
			"art":                     it.Art,
			"added_at":                it.AddedAt,
			"originally_available_at": it.OriginallyAvailableAt,
			"library_name":            sec.Name,
			"section_id":              sec.ID,
		},
	}
	return item
}

// itemFromPlex converts a Plex MediaContainer entry to the open media item
// record, normalizing field names to the snake_case the template layer and
// stored format definitions use.
func itemFromPlex(it *models.PlexMetadataItem, sec models.SectionInfo) *models.MediaItem {
	return &models.MediaItem{
		RatingKey:   it.RatingKey,
		MediaType:   it.Type,
		Title:       it.Title,
		AddedAt:     it.AddedAt,
		SectionID:   sec.ID,
		SectionName: sec.Name,
		Fields: map[string]interface{}{
			"rating_key":              it.RatingKey,
			"parent_rating_key":       it.ParentRatingKey,
			"grandparent_rating_key":  it.GrandparentRatingKey,
			"title":                   it.Title,
			"parent_title":            it.ParentTitle,
			"grandparent_title":       it.GrandparentTitle,
			"media_type":              it.Type,
			"media_index":             it.Index,
			"parent_media_index":      it.ParentIndex,
			"year":                    it.Year,
			"summary":                 it.Summary,
			"rating":                  it.Rating,
			"duration":                it.Duration,
			"thumb":                   it.Thumb,
			"parent_thumb":            it.ParentThumb,
			"grandparent_thumb":       it.GrandparentThumb,
			"art":                     it.Art,
			"added_at":                it.AddedAt,
			"originally_available_at": it.OriginallyAvailableAt,
			"library_name":            sec.Name,
			"section_id":              sec.ID,
		},
	}
}

// orEmpty substitutes an empty slice for nil array fields so templates and
// raw views always see an array.
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
