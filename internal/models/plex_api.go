// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package models

// ============================================================================
// Library Sections Models - GET /library/sections
// ============================================================================

// PlexLibrarySectionsResponse represents the response from GET /library/sections
type PlexLibrarySectionsResponse struct {
	MediaContainer PlexLibrarySectionsContainer `json:"MediaContainer"`
}

// PlexLibrarySectionsContainer wraps the list of library sections
type PlexLibrarySectionsContainer struct {
	Size      int                  `json:"size"`
	AllowSync bool                 `json:"allowSync,omitempty"`
	Title1    string               `json:"title1,omitempty"`
	Directory []PlexLibrarySection `json:"Directory,omitempty"`
}

// PlexLibrarySection represents a single library section (Movies, TV Shows, etc.)
type PlexLibrarySection struct {
	Key      string `json:"key"`      // Section key/ID (used in URLs like /library/sections/{key})
	UUID     string `json:"uuid"`     // Unique section UUID
	Title    string `json:"title"`    // Section name (e.g., "Movies", "TV Shows")
	Type     string `json:"type"`     // Section type: "movie", "show", "artist", "photo"
	Agent    string `json:"agent"`    // Metadata agent (e.g., "tv.plex.agents.movie")
	Scanner  string `json:"scanner"`  // Scanner type (e.g., "Plex Movie")
	Language string `json:"language"` // Primary language (e.g., "en-US")

	Thumb     string `json:"thumb,omitempty"`
	Art       string `json:"art,omitempty"`
	Composite string `json:"composite,omitempty"`

	Refreshing bool `json:"refreshing,omitempty"`
	Hidden     int  `json:"hidden,omitempty"`

	CreatedAt int64 `json:"createdAt,omitempty"`
	UpdatedAt int64 `json:"updatedAt,omitempty"`
	ScannedAt int64 `json:"scannedAt,omitempty"`
}

// ============================================================================
// Section Content Models - GET /library/sections/{id}/recentlyAdded
// ============================================================================

// PlexSectionContentResponse represents the response from
// GET /library/sections/{id}/all or GET /library/sections/{id}/recentlyAdded
type PlexSectionContentResponse struct {
	MediaContainer PlexSectionContentContainer `json:"MediaContainer"`
}

// PlexSectionContentContainer wraps the items of one section listing
type PlexSectionContentContainer struct {
	Size                int                `json:"size"`
	TotalSize           int                `json:"totalSize,omitempty"`
	Offset              int                `json:"offset,omitempty"`
	LibrarySectionID    int                `json:"librarySectionID,omitempty"`
	LibrarySectionTitle string             `json:"librarySectionTitle,omitempty"`
	Metadata            []PlexMetadataItem `json:"Metadata,omitempty"`
}

// PlexMetadataItem represents one item in a Plex MediaContainer listing.
type PlexMetadataItem struct {
	RatingKey            string  `json:"ratingKey"`
	ParentRatingKey      string  `json:"parentRatingKey,omitempty"`
	GrandparentRatingKey string  `json:"grandparentRatingKey,omitempty"`
	Key                  string  `json:"key"`
	GUID                 string  `json:"guid,omitempty"`
	Type                 string  `json:"type"` // "movie", "show", "season", "episode", "artist", "album", "track"
	Title                string  `json:"title"`
	ParentTitle          string  `json:"parentTitle,omitempty"`
	GrandparentTitle     string  `json:"grandparentTitle,omitempty"`
	Summary              string  `json:"summary,omitempty"`
	Rating               float64 `json:"rating,omitempty"`
	AudienceRating       float64 `json:"audienceRating,omitempty"`
	Year                 int     `json:"year,omitempty"`
	Index                int     `json:"index,omitempty"`       // Episode number for episodes
	ParentIndex          int     `json:"parentIndex,omitempty"` // Season number for episodes
	Duration             int64   `json:"duration,omitempty"`    // Milliseconds
	Thumb                string  `json:"thumb,omitempty"`
	ParentThumb          string  `json:"parentThumb,omitempty"`
	GrandparentThumb     string  `json:"grandparentThumb,omitempty"`
	Art                  string  `json:"art,omitempty"`

	OriginallyAvailableAt string `json:"originallyAvailableAt,omitempty"`
	AddedAt               int64  `json:"addedAt,omitempty"`
	UpdatedAt             int64  `json:"updatedAt,omitempty"`
	LastViewedAt          int64  `json:"lastViewedAt,omitempty"`

	LibrarySectionID    int    `json:"librarySectionID,omitempty"`
	LibrarySectionTitle string `json:"librarySectionTitle,omitempty"`
}
