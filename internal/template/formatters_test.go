// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package template

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"nil", nil, "0m"},
		{"zero", 0, "0m"},
		{"negative", -5, "0m"},
		{"empty string", "", "0m"},
		{"90 seconds", 90, "1m"},
		{"5400 seconds", 5400, "1h 30m"},
		{"7200 seconds", 7200, "2h"},
		{"numeric string seconds", "5400", "1h 30m"},
		{"just below seconds ceiling", 9999, "2h 46m"},
		{"at ceiling is milliseconds", 10000, "0m"},
		{"one hour of milliseconds", 3600000, "1h"},
		{"90 minutes of milliseconds", 5400000, "1h 30m"},
		{"float seconds", 90.0, "1m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDuration(tt.input); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDurationPassThrough(t *testing.T) {
	// Already-formatted strings are idempotent under trimming.
	for _, s := range []string{"1h 30m", "2h", "45m", "0m", "12h 5m"} {
		if got := FormatDuration(s); got != s {
			t.Errorf("FormatDuration(%q) = %q, want identity", s, got)
		}
	}
	if got := FormatDuration("  1h 30m  "); got != "1h 30m" {
		t.Errorf("Expected trimmed pass-through, got %q", got)
	}
	// Non-matching strings are not passed through.
	if got := FormatDuration("90s"); got == "90s" {
		t.Error("Expected non-matching string to not pass through")
	}
}

func TestFormatDateFalsy(t *testing.T) {
	for _, v := range []interface{}{nil, 0, 0.0, "", "0"} {
		if got := FormatDate(v, "default"); got != "Never" {
			t.Errorf("FormatDate(%v) = %q, want Never", v, got)
		}
	}
}

func TestFormatDateInvalid(t *testing.T) {
	for _, v := range []interface{}{"not a date", []string{"x"}} {
		if got := FormatDate(v, "default"); got != "Invalid Date" {
			t.Errorf("FormatDate(%v) = %q, want Invalid Date", v, got)
		}
	}
}

func TestFormatDateSecondsHeuristic(t *testing.T) {
	// 1700000000 is below the 2^32 boundary, so it is unix seconds.
	want := time.UnixMilli(1700000000 * 1000).Format("Jan 2")
	if got := FormatDate(1700000000, "short"); got != want {
		t.Errorf("FormatDate(1700000000, short) = %q, want %q", got, want)
	}

	// The same instant in milliseconds is above the boundary and must
	// render identically.
	if got := FormatDate(int64(1700000000000), "short"); got != want {
		t.Errorf("FormatDate(1700000000000, short) = %q, want %q", got, want)
	}
}

func TestFormatDateRelative(t *testing.T) {
	if got := FormatDate(1700000000, "relative"); !strings.HasSuffix(got, "ago") {
		t.Errorf("Expected past timestamp to end in ago, got %q", got)
	}

	tests := []struct {
		name string
		ts   int64
		want string
	}{
		{"seconds", time.Now().Unix() - 10, "10 seconds ago"},
		{"singular minute", time.Now().Unix() - 90, "1 minute ago"},
		{"hours", time.Now().Add(-5 * time.Hour).Unix(), "5 hours ago"},
		{"singular hour", time.Now().Add(-1*time.Hour - time.Minute).Unix(), "1 hour ago"},
		{"days", time.Now().Add(-72 * time.Hour).Unix(), "3 days ago"},
		{"months", time.Now().Add(-65 * 24 * time.Hour).Unix(), "2 months ago"},
		{"singular year", time.Now().Add(-400 * 24 * time.Hour).Unix(), "1 year ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.ts, "relative"); got != tt.want {
				t.Errorf("FormatDate(%d, relative) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

func TestFormatDateRelativeFutureFallsBack(t *testing.T) {
	future := time.Now().AddDate(1, 0, 0)
	want := future.Format("January 2, 2006")
	if got := FormatDate(future.Unix(), "relative"); got != want {
		t.Errorf("Expected absolute date for future timestamp, got %q want %q", got, want)
	}
}

func TestFormatDateStringInput(t *testing.T) {
	if got := FormatDate("2023-11-14", "short"); got != "Nov 14" {
		t.Errorf("FormatDate(2023-11-14, short) = %q, want Nov 14", got)
	}
}

func TestFormatDateTimeFormat(t *testing.T) {
	ts := int64(1700000000)
	want := time.UnixMilli(ts * 1000).Format("15:04")
	if got := FormatDate(ts, "time"); got != want {
		t.Errorf("FormatDate(time) = %q, want %q", got, want)
	}
}

func TestFormatEpisodeCode(t *testing.T) {
	tests := []struct {
		season  interface{}
		episode interface{}
		want    string
	}{
		{1, 5, "S01E05"},
		{10, 12, "S10E12"},
		{"1", "5", "S01E05"},
		{2.0, 3.0, "S02E03"},
	}
	for _, tt := range tests {
		if got := FormatEpisodeCode(tt.season, tt.episode); got != tt.want {
			t.Errorf("FormatEpisodeCode(%v, %v) = %q, want %q", tt.season, tt.episode, got, tt.want)
		}
	}
}

func TestJoinArray(t *testing.T) {
	if got := JoinArray([]string{"Action", "Drama"}); got != "Action, Drama" {
		t.Errorf("JoinArray = %q", got)
	}
	if got := JoinArray([]interface{}{"x", 1.0}); got != "x, 1" {
		t.Errorf("JoinArray mixed = %q", got)
	}
	if got := JoinArray(nil); got != "" {
		t.Errorf("JoinArray(nil) = %q, want empty", got)
	}
	if got := JoinArray([]string{}); got != "" {
		t.Errorf("JoinArray(empty) = %q, want empty", got)
	}
}

func TestStringify(t *testing.T) {
	tests := []struct {
		input interface{}
		want  string
	}{
		{"text", "text"},
		{float64(3), "3"},
		{7.5, "7.5"},
		{nil, ""},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := stringify(tt.input); got != tt.want {
			t.Errorf("stringify(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
