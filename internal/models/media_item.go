// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package models

// MediaItem is an open record for a single upstream media item. Upstream
// payloads are loosely typed and field names vary between backends, so the
// well-known fields are lifted into typed members while everything else
// stays addressable through Fields for template substitution.
type MediaItem struct {
	RatingKey   string
	MediaType   string
	Title       string
	AddedAt     int64
	SectionID   string
	SectionName string

	// Fields holds every upstream field by its wire name (string, number,
	// array, or nil). The typed members above are mirrored here so the
	// template engine sees one flat namespace.
	Fields map[string]interface{}
}

// Lookup resolves a field by its wire name. The boolean is false when the
// field is absent, which the template engine distinguishes from a present
// nil value.
func (m *MediaItem) Lookup(key string) (interface{}, bool) {
	v, ok := m.Fields[key]
	return v, ok
}

// SetField stores a field value, initializing the map on first use.
func (m *MediaItem) SetField(key string, value interface{}) {
	if m.Fields == nil {
		m.Fields = make(map[string]interface{})
	}
	m.Fields[key] = value
}

// Clone returns a copy with its own Fields map, so a caller can enrich the
// copy without mutating an item shared through a cache.
func (m *MediaItem) Clone() *MediaItem {
	clone := *m
	clone.Fields = make(map[string]interface{}, len(m.Fields))
	for k, v := range m.Fields {
		clone.Fields[k] = v
	}
	return &clone
}

// SectionInfo identifies a library section that contributed items to an
// assembled payload.
type SectionInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// AssembledItem is one output item: rendered format strings keyed by format
// name, with the unmodified source fields preserved under Raw so consumers
// always retain ground truth alongside the rendered views.
type AssembledItem struct {
	Formatted map[string]string      `json:"formatted"`
	Raw       map[string]interface{} `json:"raw"`
}

// RecentlyAddedPayload is the assembled recently-added listing.
type RecentlyAddedPayload struct {
	Items          []AssembledItem `json:"items"`
	Count          int             `json:"count"`
	MediaType      string          `json:"media_type"`
	Sections       []SectionInfo   `json:"sections"`
	AppliedFormats []string        `json:"applied_formats"`
}

// HistoryPayload is the assembled per-user playback history.
type HistoryPayload struct {
	Records        []AssembledItem `json:"records"`
	RecordsTotal   int             `json:"records_total"`
	User           string          `json:"user"`
	AppliedFormats []string        `json:"applied_formats"`
}

// UsersPayload is the assembled users table.
type UsersPayload struct {
	Users          []AssembledItem `json:"users"`
	Count          int             `json:"count"`
	AppliedFormats []string        `json:"applied_formats"`
}

// ActivityPayload is a live snapshot of current streaming sessions. It is
// never cached.
type ActivityPayload struct {
	StreamCount             int             `json:"stream_count"`
	StreamCountDirectPlay   int             `json:"stream_count_direct_play"`
	StreamCountDirectStream int             `json:"stream_count_direct_stream"`
	StreamCountTranscode    int             `json:"stream_count_transcode"`
	TotalBandwidth          int             `json:"total_bandwidth"`
	Sessions                []AssembledItem `json:"sessions"`
}
