// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package tautulli

// TautulliLibraries represents the API response from get_libraries endpoint
type TautulliLibraries struct {
	Response TautulliLibrariesResponse `json:"response"`
}

type TautulliLibrariesResponse struct {
	Result  string                  `json:"result"`
	Message *string                 `json:"message,omitempty"`
	Data    []TautulliLibraryDetail `json:"data"`
}

type TautulliLibraryDetail struct {
	SectionID   int    `json:"section_id"`
	SectionName string `json:"section_name"`
	SectionType string `json:"section_type"` // "movie", "show", "artist", "photo"
	Count       int    `json:"count"`
	ParentCount int    `json:"parent_count"`
	ChildCount  int    `json:"child_count"`
	IsActive    int    `json:"is_active"`
	Thumb       string `json:"thumb"`
	Art         string `json:"art"`
}
