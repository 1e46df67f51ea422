// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package tautulli

// TautulliUsersTable represents the API response from get_users_table endpoint
type TautulliUsersTable struct {
	Response TautulliUsersTableResponse `json:"response"`
}

type TautulliUsersTableResponse struct {
	Result  string                 `json:"result"`
	Message *string                `json:"message,omitempty"`
	Data    TautulliUsersTableData `json:"data"`
}

type TautulliUsersTableData struct {
	RecordsTotal    int                     `json:"recordsTotal"`
	RecordsFiltered int                     `json:"recordsFiltered"`
	Draw            int                     `json:"draw"`
	Data            []TautulliUsersTableRow `json:"data"`
}

type TautulliUsersTableRow struct {
	UserID       int    `json:"user_id"`
	Username     string `json:"user"`
	FriendlyName string `json:"friendly_name"`
	UserThumb    string `json:"user_thumb"`
	Plays        int    `json:"plays"`
	Duration     int    `json:"duration"` // Total seconds watched
	LastSeen     int64  `json:"last_seen"`
	LastPlayed   string `json:"last_played"`
	IPAddress    string `json:"ip_address,omitempty"`
	PlatformName string `json:"platform,omitempty"`
	PlayerName   string `json:"player,omitempty"`
	MediaType    string `json:"media_type,omitempty"`
	Title        string `json:"title,omitempty"`
	Thumb        string `json:"thumb,omitempty"`
	RatingKey    string `json:"rating_key,omitempty"`
}
