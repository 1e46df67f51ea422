// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package tautulli defines the response shapes of the Tautulli v2 API
// commands this service consumes. Every response shares the same envelope:
//
//	{ "response": { "result": "success"|"error", "message": ..., "data": ... } }
//
// The Message field is a pointer throughout because Tautulli returns JSON
// null for it on success.
package tautulli
