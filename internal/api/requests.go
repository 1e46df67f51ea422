// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// getIntParam reads an integer query parameter, falling back to def when
// absent. Values outside [1, max] are an error; max 0 means unbounded.
func getIntParam(r *http.Request, name string, def, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if value < 1 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	if max > 0 && value > max {
		return 0, fmt.Errorf("%s must be at most %d", name, max)
	}
	return value, nil
}

// getBoolParam reads a boolean query parameter, treating absence as false.
func getBoolParam(r *http.Request, name string) bool {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

// timeoutContext derives a bounded context from the request.
func timeoutContext(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), d)
}
