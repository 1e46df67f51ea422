// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package api

import (
	"errors"
	"net/http"

	"github.com/tomtom215/tabularium/internal/assembler"
	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
)

// respondAssemblerError maps assembler failures onto the HTTP surface:
// unknown media type is the caller's fault (400), an upstream failure is a
// bad gateway (502), anything else is internal (500).
func respondAssemblerError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, assembler.ErrUnknownMediaType):
		respondError(w, r, http.StatusBadRequest, models.ErrCodeValidation, err.Error(), nil)
	case assembler.IsUpstream(err):
		logging.Ctx(r.Context()).Error().Err(err).Msg("Upstream request failed")
		respondError(w, r, http.StatusBadGateway, models.ErrCodeUpstream, "upstream service unavailable", nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, models.ErrCodeInternal, "internal error", nil)
	}
}
