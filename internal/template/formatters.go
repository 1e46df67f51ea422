// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package template

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// secondsEpochCeiling is the timestamp heuristic boundary: numeric inputs
// below it are unix seconds, at or above it unix milliseconds. Upstream
// APIs are inconsistent about the unit, and stored user templates depend
// on this exact boundary, so it must not be "fixed".
const secondsEpochCeiling = 4294967296

// durationSecondsCeiling is the duration heuristic boundary: a numeric
// duration in (0, durationSecondsCeiling) is seconds and is converted to
// milliseconds first; anything at or above is already milliseconds. Same
// compatibility constraint as secondsEpochCeiling.
const durationSecondsCeiling = 10000

// formattedDurationPattern matches durations that are already rendered
// ("2h", "1h 30m", "45m"); those pass through unchanged.
var formattedDurationPattern = regexp.MustCompile(`^\d+h( \d+m)?$|^\d+m$`)

// FormatDate renders a timestamp-like value (unix seconds, unix
// milliseconds, or a parseable date string) in the requested format.
//
// Formats: "short" (Jan 5), "relative" (3 days ago), "full" (long-form),
// "time" (HH:MM), anything else renders the default long date.
//
// Falsy input (nil, zero, empty string) returns "Never"; unparseable input
// returns "Invalid Date".
func FormatDate(value interface{}, format string) string {
	if isFalsy(value) {
		return "Never"
	}

	t, ok := parseTimestamp(value)
	if !ok {
		return "Invalid Date"
	}

	switch format {
	case "short":
		return t.Format("Jan 2")
	case "relative":
		return relativeTime(t)
	case "full":
		return t.Format("Monday, January 2, 2006")
	case "time":
		return t.Format("15:04")
	default:
		return t.Format("January 2, 2006")
	}
}

// parseTimestamp converts a timestamp-like value to a time.Time. Numeric
// values below secondsEpochCeiling are unix seconds, otherwise unix
// milliseconds. Strings are tried as numbers first, then as dates.
func parseTimestamp(value interface{}) (time.Time, bool) {
	if n, ok := toFloat(value); ok {
		ms := n
		if n < secondsEpochCeiling {
			ms = n * 1000
		}
		return time.UnixMilli(int64(ms)), true
	}

	s, ok := value.(string)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// relativeTime renders the elapsed time since t, largest unit first, with
// singular phrasing at exactly one. Future timestamps fall back to the
// absolute date.
func relativeTime(t time.Time) string {
	diff := time.Since(t)
	if diff < 0 {
		return t.Format("January 2, 2006")
	}

	seconds := int64(diff.Seconds())
	days := seconds / 86400

	switch {
	case days >= 365:
		return pluralize(days/365, "year")
	case days >= 30:
		return pluralize(days/30, "month")
	case days >= 1:
		return pluralize(days, "day")
	case seconds >= 3600:
		return pluralize(seconds/3600, "hour")
	case seconds >= 60:
		return pluralize(seconds/60, "minute")
	default:
		return pluralize(seconds, "second")
	}
}

func pluralize(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatDuration renders a duration value as "Xh Ym". Falsy or
// non-positive input returns "0m". Already-formatted strings pass through
// unchanged. Numeric input in (0, durationSecondsCeiling) is seconds;
// larger values are milliseconds.
func FormatDuration(value interface{}) string {
	if isFalsy(value) {
		return "0m"
	}

	if s, ok := value.(string); ok {
		trimmed := strings.TrimSpace(s)
		if formattedDurationPattern.MatchString(trimmed) {
			return trimmed
		}
	}

	n, ok := toFloat(value)
	if !ok || n <= 0 {
		return "0m"
	}

	ms := n
	if n < durationSecondsCeiling {
		ms = n * 1000
	}

	minutes := int64(ms) / 60000
	hours := minutes / 60
	mins := minutes % 60

	switch {
	case hours > 0 && mins > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// FormatEpisodeCode renders season and episode numbers as "SxxEyy" with
// two-digit zero padding.
func FormatEpisodeCode(season, episode interface{}) string {
	return FormatSeasonIndex(season) + FormatEpisodeIndex(episode)
}

// FormatSeasonIndex renders a season number as "Sxx".
func FormatSeasonIndex(value interface{}) string {
	return "S" + padIndex(value)
}

// FormatEpisodeIndex renders an episode number as "Exx".
func FormatEpisodeIndex(value interface{}) string {
	return "E" + padIndex(value)
}

func padIndex(value interface{}) string {
	if n, ok := toFloat(value); ok {
		return fmt.Sprintf("%02d", int64(n))
	}
	return fmt.Sprintf("%v", value)
}

// JoinArray renders an array field as a comma-separated string. Non-array
// input is stringified as-is; nil and empty arrays render empty.
func JoinArray(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case []string:
		return strings.Join(v, ", ")
	case []interface{}:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		return stringify(value)
	}
}

// stringify renders any value the way it should appear inside a template.
// Floats that carry no fraction print as integers, matching how JSON
// numbers arrive via interface{}.
func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return stringify(float64(v))
	case []string, []interface{}:
		return JoinArray(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toFloat extracts a numeric value from the loosely typed upstream fields:
// native numbers, JSON float64 numbers, or numeric strings.
func toFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// isFalsy reports whether a field value counts as absent for formatting
// purposes: nil, numeric zero, or an empty/zero string.
func isFalsy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		s := strings.TrimSpace(v)
		return s == "" || s == "0"
	default:
		if n, ok := toFloat(value); ok {
			return n == 0
		}
		return false
	}
}
