// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package tautulli

// TautulliMetadata represents the API response from Tautulli's get_metadata endpoint
type TautulliMetadata struct {
	Response TautulliMetadataResponse `json:"response"`
}

type TautulliMetadataResponse struct {
	Result  string               `json:"result"`
	Message *string              `json:"message,omitempty"`
	Data    TautulliMetadataData `json:"data"`
}

type TautulliMetadataData struct {
	RatingKey             string              `json:"rating_key"`
	ParentRatingKey       string              `json:"parent_rating_key"`
	GrandparentRatingKey  string              `json:"grandparent_rating_key"`
	Title                 string              `json:"title"`
	ParentTitle           string              `json:"parent_title"`
	GrandparentTitle      string              `json:"grandparent_title"`
	MediaType             string              `json:"media_type"`
	MediaIndex            int                 `json:"media_index"`
	ParentMediaIndex      int                 `json:"parent_media_index"`
	Studio                string              `json:"studio"`
	ContentRating         string              `json:"content_rating"`
	Summary               string              `json:"summary"`
	Tagline               string              `json:"tagline"`
	Rating                float64             `json:"rating"`
	AudienceRating        float64             `json:"audience_rating"`
	Duration              int                 `json:"duration"`
	Year                  int                 `json:"year"`
	Thumb                 string              `json:"thumb"`
	ParentThumb           string              `json:"parent_thumb"`
	GrandparentThumb      string              `json:"grandparent_thumb"`
	Art                   string              `json:"art"`
	OriginallyAvailableAt string              `json:"originally_available_at"`
	AddedAt               int64               `json:"added_at"`
	UpdatedAt             int64               `json:"updated_at"`
	LastViewedAt          int64               `json:"last_viewed_at"`
	GUID                  string              `json:"guid"`
	Directors             []string            `json:"directors"`
	Writers               []string            `json:"writers"`
	Actors                []string            `json:"actors"`
	Genres                []string            `json:"genres"`
	Labels                []string            `json:"labels"`
	MediaInfo             []TautulliMediaInfo `json:"media_info"`
}

type TautulliMediaInfo struct {
	ID                 int    `json:"id"`
	Container          string `json:"container"`
	Bitrate            int    `json:"bitrate"`
	Height             int    `json:"height"`
	Width              int    `json:"width"`
	VideoCodec         string `json:"video_codec"`
	VideoResolution    string `json:"video_resolution"`
	VideoFramerate     string `json:"video_framerate"`
	VideoProfile       string `json:"video_profile"`
	AudioCodec         string `json:"audio_codec"`
	AudioChannels      int    `json:"audio_channels"`
	AudioChannelLayout string `json:"audio_channel_layout"`
}

// VideoResolution returns the resolution of the first media_info entry, or
// the empty string when none is present.
func (d *TautulliMetadataData) VideoResolution() string {
	if len(d.MediaInfo) == 0 {
		return ""
	}
	return d.MediaInfo[0].VideoResolution
}
