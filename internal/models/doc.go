// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package models defines the shared data structures of the service: the API
// response envelope, format definitions, assembled media items, and the
// Plex MediaContainer shapes. Upstream analytics shapes live in the tautulli
// subpackage.
package models
