// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package tautulli

// TautulliHistory represents the API response from get_history endpoint
type TautulliHistory struct {
	Response TautulliHistoryResponse `json:"response"`
}

type TautulliHistoryResponse struct {
	Result  string              `json:"result"`
	Message *string             `json:"message,omitempty"`
	Data    TautulliHistoryData `json:"data"`
}

type TautulliHistoryData struct {
	RecordsFiltered int                     `json:"recordsFiltered"`
	RecordsTotal    int                     `json:"recordsTotal"`
	Data            []TautulliHistoryRecord `json:"data"`
}

// TautulliHistoryRecord is one playback history row. Pointer fields are
// nullable on the wire; Tautulli returns JSON null for them in edge cases
// (ended sessions, deleted users, ungrouped rows).
type TautulliHistoryRecord struct {
	SessionKey    *string `json:"session_key"` // null when the session has ended
	Date          int64   `json:"date"`
	Started       int64   `json:"started"`
	Stopped       int64   `json:"stopped"`
	Duration      int     `json:"duration"` // Seconds watched
	PausedCounter int     `json:"paused_counter"`

	UserID       *int   `json:"user_id"`
	User         string `json:"user"`
	FriendlyName string `json:"friendly_name"`
	UserThumb    string `json:"user_thumb"`

	MediaType        string  `json:"media_type"`
	RatingKey        string  `json:"rating_key"`
	Title            string  `json:"title"`
	ParentTitle      *string `json:"parent_title"`      // null for movies
	GrandparentTitle *string `json:"grandparent_title"` // null for movies
	FullTitle        string  `json:"full_title"`
	MediaIndex       string  `json:"media_index"`
	ParentMediaIndex string  `json:"parent_media_index"`
	Year             int     `json:"year"`
	Thumb            string  `json:"thumb"`

	Platform string `json:"platform"`
	Player   string `json:"player"`
	Product  string `json:"product"`

	PercentComplete int         `json:"percent_complete"`
	WatchedStatus   interface{} `json:"watched_status"` // 0, 0.5, or 1 on the wire
	State           *string     `json:"state"`          // null for stopped sessions
	GroupCount      *int        `json:"group_count"`
	GroupIDs        string      `json:"group_ids"`
}
