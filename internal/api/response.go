// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package api provides the HTTP surface: the chi router, the dashboard and
// cache-control handlers, and standardized response envelopes.
package api

import (
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
)

// respondSuccess writes a success envelope around data. The cached flag and
// elapsed time since start land in the response metadata.
//
// The encoded payload (not the envelope, whose metadata timestamp varies per
// response) is fingerprinted with FNV-1a into a weak ETag; a matching
// If-None-Match short-circuits to 304 without a body.
func respondSuccess(w http.ResponseWriter, r *http.Request, data interface{}, cached bool, start time.Time) {
	payload, err := json.Marshal(data)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode response payload")
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "failed to encode response", nil)
		return
	}

	etag := etagFor(payload)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	response := models.APIResponse{
		Status: "success",
		Data:   json.RawMessage(payload),
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      cached,
		},
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes an error envelope with the given status and error code.
func respondError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string, details map[string]interface{}) {
	response := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Failed to encode error response")
	}
}

// etagFor computes a weak ETag from the encoded payload.
func etagFor(body []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(body)
	return fmt.Sprintf(`W/"%x"`, h.Sum64())
}
