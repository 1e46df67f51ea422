// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"context"

	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// Activity returns a live snapshot of the current streaming sessions.
// Activity is never cached and never template-formatted; sessions carry
// their raw upstream fields only.
func (a *Assembler) Activity(ctx context.Context) (*models.ActivityPayload, error) {
	resp, err := a.tautulli.GetActivity(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "get_activity", Err: err}
	}

	data := &resp.Response.Data
	sessions := make([]models.AssembledItem, 0, len(data.Sessions))
	for i := range data.Sessions {
		sessions = append(sessions, models.AssembledItem{
			Formatted: map[string]string{},
			Raw:       sessionFields(&data.Sessions[i]),
		})
	}

	return &models.ActivityPayload{
		StreamCount:             data.StreamCount,
		StreamCountDirectPlay:   data.StreamCountDirectPlay,
		StreamCountDirectStream: data.StreamCountDirectStream,
		StreamCountTranscode:    data.StreamCountTranscode,
		TotalBandwidth:          data.TotalBandwidth,
		Sessions:                sessions,
	}, nil
}

func sessionFields(s *tautulli.TautulliActivitySession) map[string]interface{} {
	return map[string]interface{}{
		"session_key":        s.SessionKey,
		"session_id":         s.SessionID,
		"media_type":         s.MediaType,
		"rating_key":         s.RatingKey,
		"title":              s.Title,
		"parent_title":       s.ParentTitle,
		"grandparent_title":  s.GrandparentTitle,
		"full_title":         s.FullTitle,
		"media_index":        s.MediaIndex,
		"parent_media_index": s.ParentMediaIndex,
		"year":               s.Year,
		"thumb":              s.Thumb,
		"art":                s.Art,
		"user":               s.User,
		"user_id":            s.UserID,
		"friendly_name":      s.FriendlyName,
		"user_thumb":         s.UserThumb,
		"platform":           s.Platform,
		"player":             s.Player,
		"product":            s.Product,
		"device":             s.Device,
		"state":              s.State,
		"view_offset":        s.ViewOffset,
		"duration":           s.Duration,
		"progress_percent":   s.ProgressPercent,
		"transcode_decision": s.TranscodeDecision,
		"video_resolution":   s.VideoResolution,
		"quality_profile":    s.QualityProfile,
		"bandwidth":          s.Bandwidth,
		"location":           s.Location,
		"ip_address":         s.IPAddress,
	}
}
