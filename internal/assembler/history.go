// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// History assembles the playback history listing. A userID of 0 queries
// across all users; length bounds the number of rows.
//
// The second return value reports whether the payload came from cache.
func (a *Assembler) History(ctx context.Context, userID int, length int, forceRefresh bool) (*models.HistoryPayload, bool, error) {
	scope := "all"
	if userID > 0 {
		scope = strconv.Itoa(userID)
	}
	key := fmt.Sprintf("history:%s:%d", scope, length)

	if !forceRefresh {
		if v, hit := a.caches.History.Get(key); hit {
			if payload, ok := v.(*models.HistoryPayload); ok {
				a.refresher.Refresh(key, func() {
					refreshed, err := a.buildHistory(context.Background(), userID, length, scope)
					if err != nil {
						logging.Warn().Err(err).Str("key", key).Msg("Background refresh failed")
						return
					}
					a.caches.History.Set(key, refreshed)
				})
				return payload, true, nil
			}
		}
	}

	payload, err := a.buildHistory(ctx, userID, length, scope)
	if err != nil {
		return nil, false, err
	}
	a.caches.History.Set(key, payload)
	return payload, false, nil
}

func (a *Assembler) buildHistory(ctx context.Context, userID, length int, scope string) (*models.HistoryPayload, error) {
	resp, err := a.tautulli.GetHistory(ctx, userID, length)
	if err != nil {
		return nil, &UpstreamError{Op: "get_history", Err: err}
	}

	// History rows render with both the user- and library-scoped format
	// groups; section scoping does not apply to history.
	ff := a.store.GetFormats()
	defs := append(append([]models.FormatDefinition{}, ff.Users...), ff.Libraries...)

	records := make([]models.AssembledItem, 0, len(resp.Response.Data.Data))
	applied := []string{}
	appliedSeen := make(map[string]bool)
	for i := range resp.Response.Data.Data {
		item := itemFromHistoryRecord(&resp.Response.Data.Data[i])
		formatted, names := applyFormats(defs, mediaTypeFamily(item.MediaType), item)
		applied = mergeApplied(applied, names, appliedSeen)
		records = append(records, models.AssembledItem{
			Formatted: formatted,
			Raw:       item.Fields,
		})
	}

	return &models.HistoryPayload{
		Records:        records,
		RecordsTotal:   resp.Response.Data.RecordsTotal,
		User:           scope,
		AppliedFormats: applied,
	}, nil
}

// itemFromHistoryRecord converts one history row to the open media item
// record. Nullable wire fields stay nil so templates render them empty.
func itemFromHistoryRecord(rec *tautulli.TautulliHistoryRecord) *models.MediaItem {
	return &models.MediaItem{
		RatingKey: rec.RatingKey,
		MediaType: rec.MediaType,
		Title:     rec.Title,
		AddedAt:   rec.Date,
		Fields: map[string]interface{}{
			"session_key":        strOrNil(rec.SessionKey),
			"date":               rec.Date,
			"started":            rec.Started,
			"stopped":            rec.Stopped,
			"duration":           rec.Duration,
			"paused_counter":     rec.PausedCounter,
			"user_id":            intOrNil(rec.UserID),
			"user":               rec.User,
			"friendly_name":      rec.FriendlyName,
			"user_thumb":         rec.UserThumb,
			"media_type":         rec.MediaType,
			"rating_key":         rec.RatingKey,
			"title":              rec.Title,
			"parent_title":       strOrNil(rec.ParentTitle),
			"grandparent_title":  strOrNil(rec.GrandparentTitle),
			"full_title":         rec.FullTitle,
			"media_index":        rec.MediaIndex,
			"parent_media_index": rec.ParentMediaIndex,
			"year":               rec.Year,
			"thumb":              rec.Thumb,
			"platform":           rec.Platform,
			"player":             rec.Player,
			"product":            rec.Product,
			"percent_complete":   rec.PercentComplete,
			"watched_status":     rec.WatchedStatus,
			"state":              strOrNil(rec.State),
			"group_count":        intOrNil(rec.GroupCount),
		},
	}
}

// strOrNil unwraps a nullable wire string so downstream code sees either a
// plain string or nil, never a pointer.
func strOrNil(p *string) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func intOrNil(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
