// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package middleware provides chi-compatible HTTP middleware: per-request
// Prometheus instrumentation and request ID propagation for log correlation.
package middleware
