// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"context"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// usersCacheKey is the single cache entry for the assembled users table.
// The upstream listing is already sorted by last_seen descending.
const usersCacheKey = "users-table"

// Users assembles the users table with play counts, watch time, and
// last-seen timestamps.
//
// The second return value reports whether the payload came from cache.
func (a *Assembler) Users(ctx context.Context, forceRefresh bool) (*models.UsersPayload, bool, error) {
	if !forceRefresh {
		if v, hit := a.caches.History.Get(usersCacheKey); hit {
			if payload, ok := v.(*models.UsersPayload); ok {
				a.refresher.Refresh(usersCacheKey, func() {
					refreshed, err := a.buildUsers(context.Background())
					if err != nil {
						logging.Warn().Err(err).Str("key", usersCacheKey).Msg("Background refresh failed")
						return
					}
					a.caches.History.Set(usersCacheKey, refreshed)
				})
				return payload, true, nil
			}
		}
	}

	payload, err := a.buildUsers(ctx)
	if err != nil {
		return nil, false, err
	}
	a.caches.History.Set(usersCacheKey, payload)
	return payload, false, nil
}

func (a *Assembler) buildUsers(ctx context.Context) (*models.UsersPayload, error) {
	resp, err := a.tautulli.GetUsersTable(ctx)
	if err != nil {
		return nil, &UpstreamError{Op: "get_users_table", Err: err}
	}

	defs := a.store.GetFormats().Users

	users := make([]models.AssembledItem, 0, len(resp.Response.Data.Data))
	applied := []string{}
	appliedSeen := make(map[string]bool)
	for i := range resp.Response.Data.Data {
		item := itemFromUsersRow(&resp.Response.Data.Data[i])
		formatted, names := applyFormats(defs, mediaTypeFamily(item.MediaType), item)
		applied = mergeApplied(applied, names, appliedSeen)
		users = append(users, models.AssembledItem{
			Formatted: formatted,
			Raw:       item.Fields,
		})
	}

	return &models.UsersPayload{
		Users:          users,
		Count:          len(users),
		AppliedFormats: applied,
	}, nil
}

func itemFromUsersRow(row *tautulli.TautulliUsersTableRow) *models.MediaItem {
	return &models.MediaItem{
		RatingKey: row.RatingKey,
		MediaType: row.MediaType,
		Title:     row.Title,
		AddedAt:   row.LastSeen,
		Fields: map[string]interface{}{
			"user_id":       row.UserID,
			"user":          row.Username,
			"friendly_name": row.FriendlyName,
			"user_thumb":    row.UserThumb,
			"plays":         row.Plays,
			"duration":      row.Duration,
			"last_seen":     row.LastSeen,
			"last_played":   row.LastPlayed,
			"ip_address":    row.IPAddress,
			"platform":      row.PlatformName,
			"player":        row.PlayerName,
			"media_type":    row.MediaType,
			"title":         row.Title,
			"thumb":         row.Thumb,
			"rating_key":    row.RatingKey,
		},
	}
}
