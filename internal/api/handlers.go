// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/tabularium/internal/assembler"
	"github.com/tomtom215/tabularium/internal/cache"
	"github.com/tomtom215/tabularium/internal/config"
	"github.com/tomtom215/tabularium/internal/formats"
	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/upstream"
)

// Handlers carries the dependencies shared by all HTTP handlers.
type Handlers struct {
	assembler *assembler.Assembler
	caches    *cache.Set
	refresher *cache.RefreshCoordinator
	store     *formats.Store
	cfg       *config.APIConfig
	tautulli  upstream.TautulliClientInterface
	startTime time.Time
}

// NewHandlers creates the handler set.
func NewHandlers(
	asm *assembler.Assembler,
	caches *cache.Set,
	refresher *cache.RefreshCoordinator,
	store *formats.Store,
	cfg *config.APIConfig,
	tautulli upstream.TautulliClientInterface,
) *Handlers {
	return &Handlers{
		assembler: asm,
		caches:    caches,
		refresher: refresher,
		store:     store,
		cfg:       cfg,
		tautulli:  tautulli,
		startTime: time.Now(),
	}
}

// GetRecentlyAdded handles GET /api/v1/recently-added.
//
// Query parameters: type (movies|shows|music, default movies), section
// (optional section id), count (default/max from config), refresh (bypass
// cache when true).
func (h *Handlers) GetRecentlyAdded(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	mediaType := r.URL.Query().Get("type")
	if mediaType == "" {
		mediaType = "movies"
	}
	sectionID := r.URL.Query().Get("section")

	count, err := getIntParam(r, "count", h.cfg.DefaultCount, h.cfg.MaxCount)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	forceRefresh := getBoolParam(r, "refresh")

	payload, cached, err := h.assembler.RecentlyAdded(r.Context(), mediaType, sectionID, count, forceRefresh)
	if err != nil {
		respondAssemblerError(w, r, err)
		return
	}
	respondSuccess(w, r, payload, cached, start)
}

// GetHistory handles GET /api/v1/history.
//
// Query parameters: user_id (optional, all users when absent), length
// (default/max from config), refresh.
func (h *Handlers) GetHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := getIntParam(r, "user_id", 0, 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	length, err := getIntParam(r, "length", h.cfg.DefaultCount, h.cfg.MaxCount)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}
	forceRefresh := getBoolParam(r, "refresh")

	payload, cached, err := h.assembler.History(r.Context(), userID, length, forceRefresh)
	if err != nil {
		respondAssemblerError(w, r, err)
		return
	}
	respondSuccess(w, r, payload, cached, start)
}

// GetUsers handles GET /api/v1/users.
func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	payload, cached, err := h.assembler.Users(r.Context(), getBoolParam(r, "refresh"))
	if err != nil {
		respondAssemblerError(w, r, err)
		return
	}
	respondSuccess(w, r, payload, cached, start)
}

// GetActivity handles GET /api/v1/activity. Activity is a live snapshot
// and is never cached.
func (h *Handlers) GetActivity(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	payload, err := h.assembler.Activity(r.Context())
	if err != nil {
		respondAssemblerError(w, r, err)
		return
	}
	respondSuccess(w, r, payload, false, start)
}

// GetFormats handles GET /api/v1/formats.
func (h *Handlers) GetFormats(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, r, h.store.GetFormats(), false, time.Now())
}

// SaveFormats handles POST /api/v1/formats. The request body replaces the
// whole format definition file after validation.
func (h *Handlers) SaveFormats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var ff models.FormatsFile
	if err := json.NewDecoder(r.Body).Decode(&ff); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, "invalid JSON body: "+err.Error(), nil)
		return
	}

	if err := h.store.SaveFormats(&ff); err != nil {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
		return
	}

	respondSuccess(w, r, h.store.GetFormats(), false, start)
}

// ClearCache handles POST /api/v1/cache/clear, emptying every cache.
func (h *Handlers) ClearCache(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	removed := h.caches.ClearAll()
	logging.Ctx(r.Context()).Info().Int("removed", removed).Msg("Cleared all caches")
	respondSuccess(w, r, map[string]interface{}{"cleared": removed}, false, start)
}

// ClearCacheNamed handles POST /api/v1/cache/clear/{name} for one of the
// named caches: media, metadata, history.
func (h *Handlers) ClearCacheNamed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	c := h.caches.ByName(name)
	if c == nil {
		respondError(w, r, http.StatusNotFound, models.ErrCodeNotFound, "unknown cache: "+name, nil)
		return
	}

	removed := c.Clear()
	logging.Ctx(r.Context()).Info().Str("cache", name).Int("removed", removed).Msg("Cleared cache")
	respondSuccess(w, r, map[string]interface{}{"cache": name, "cleared": removed}, false, start)
}

// ClearImages handles POST /api/v1/cache/clear-images, removing derived
// poster entries for one item rating key and/or one section.
func (h *Handlers) ClearImages(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	ratingKey := r.URL.Query().Get("rating_key")
	sectionID := r.URL.Query().Get("section_id")
	if ratingKey == "" && sectionID == "" {
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation,
			"at least one of rating_key or section_id is required", nil)
		return
	}

	removed := h.caches.ClearImages(ratingKey, sectionID)
	logging.Ctx(r.Context()).Info().
		Str("rating_key", ratingKey).
		Str("section_id", sectionID).
		Int("removed", removed).
		Msg("Cleared image cache entries")
	respondSuccess(w, r, map[string]interface{}{"cleared": removed}, false, start)
}

// GetHealth handles GET /api/v1/health with uptime, cache statistics, and
// the number of background refreshes in flight.
func (h *Handlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	health := map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
		"caches": map[string]cache.Stats{
			"media":    h.caches.Media.Stats(),
			"metadata": h.caches.Metadata.Stats(),
			"history":  h.caches.History.Stats(),
		},
		"pending_refreshes": h.refresher.Pending(),
	}
	respondSuccess(w, r, health, false, start)
}

// GetLiveness handles GET /livez: the process is up.
func (h *Handlers) GetLiveness(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// GetReadiness handles GET /readyz: ready means the primary upstream
// answers a ping.
func (h *Handlers) GetReadiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeoutContext(r, 5*time.Second)
	defer cancel()

	if err := h.tautulli.Ping(ctx); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Readiness check failed")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("upstream unavailable"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
