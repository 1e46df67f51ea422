// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package tautulli

// TautulliActivity represents the API response from Tautulli's get_activity endpoint
type TautulliActivity struct {
	Response TautulliActivityResponse `json:"response"`
}

type TautulliActivityResponse struct {
	Result  string               `json:"result"`
	Message *string              `json:"message,omitempty"`
	Data    TautulliActivityData `json:"data"`
}

type TautulliActivityData struct {
	LANBandwidth            int                       `json:"lan_bandwidth"`
	WANBandwidth            int                       `json:"wan_bandwidth"`
	TotalBandwidth          int                       `json:"total_bandwidth"`
	StreamCount             int                       `json:"stream_count"`
	StreamCountDirectPlay   int                       `json:"stream_count_direct_play"`
	StreamCountDirectStream int                       `json:"stream_count_direct_stream"`
	StreamCountTranscode    int                       `json:"stream_count_transcode"`
	Sessions                []TautulliActivitySession `json:"sessions"`
}

// TautulliActivitySession is one active streaming session. Index fields are
// strings on the wire for activity responses.
type TautulliActivitySession struct {
	SessionKey string `json:"session_key"`
	SessionID  string `json:"session_id"`

	MediaType            string `json:"media_type"`
	RatingKey            string `json:"rating_key"`
	ParentRatingKey      string `json:"parent_rating_key"`
	GrandparentRatingKey string `json:"grandparent_rating_key"`
	Title                string `json:"title"`
	ParentTitle          string `json:"parent_title"`
	GrandparentTitle     string `json:"grandparent_title"`
	FullTitle            string `json:"full_title"`
	MediaIndex           string `json:"media_index"`        // Episode number
	ParentMediaIndex     string `json:"parent_media_index"` // Season number
	Year                 int    `json:"year"`

	Thumb            string `json:"thumb"`
	ParentThumb      string `json:"parent_thumb"`
	GrandparentThumb string `json:"grandparent_thumb"`
	Art              string `json:"art"`

	User         string `json:"user"`
	UserID       int    `json:"user_id"`
	FriendlyName string `json:"friendly_name"`
	UserThumb    string `json:"user_thumb"`

	Platform string `json:"platform"`
	Player   string `json:"player"`
	Product  string `json:"product"`
	Device   string `json:"device"`

	State             string `json:"state"` // "playing", "paused", "buffering"
	ViewOffset        string `json:"view_offset"`
	Duration          string `json:"duration"`
	ProgressPercent   string `json:"progress_percent"`
	TranscodeDecision string `json:"transcode_decision"` // "direct play", "copy", "transcode"
	VideoResolution   string `json:"video_resolution"`
	QualityProfile    string `json:"quality_profile"`
	Bandwidth         string `json:"bandwidth"`
	Location          string `json:"location"` // "lan" or "wan"
	IPAddress         string `json:"ip_address"`
}
