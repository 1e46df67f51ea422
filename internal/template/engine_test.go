// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package template

import (
	"strings"
	"testing"
)

func TestRenderEmptyTemplate(t *testing.T) {
	if got := Render("", map[string]interface{}{"title": "X"}); got != "" {
		t.Errorf("Expected empty output for empty template, got %q", got)
	}
}

func TestRenderSimpleSubstitution(t *testing.T) {
	data := map[string]interface{}{"title": "Inception", "year": 2010}
	if got := Render("{title} ({year})", data); got != "Inception (2010)" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderMissingKeyStaysLiteral(t *testing.T) {
	got := Render("{title} by {director}", map[string]interface{}{"title": "X"})
	if got != "X by {director}" {
		t.Errorf("Expected missing variable to stay literal, got %q", got)
	}
}

func TestRenderNilValueRendersEmpty(t *testing.T) {
	got := Render("{title}:{summary}", map[string]interface{}{"title": "X", "summary": nil})
	if got != "X:" {
		t.Errorf("Expected nil value to render empty, got %q", got)
	}
}

func TestRenderRepeatedVariableReplacedGlobally(t *testing.T) {
	got := Render("{title} and {title} again", map[string]interface{}{"title": "X"})
	if got != "X and X again" {
		t.Errorf("Expected every occurrence replaced, got %q", got)
	}
}

func TestRenderTimestampWithModifier(t *testing.T) {
	got := Render("added {added_at:relative}", map[string]interface{}{"added_at": 1700000000})
	if !strings.HasSuffix(got, "ago") {
		t.Errorf("Expected relative date, got %q", got)
	}
}

func TestRenderTimestampDefaultModifier(t *testing.T) {
	got := Render("{last_seen}", map[string]interface{}{"last_seen": 0})
	if got != "Never" {
		t.Errorf("Expected Never for falsy timestamp, got %q", got)
	}
}

func TestRenderDurationField(t *testing.T) {
	got := Render("{title} ({duration})", map[string]interface{}{"title": "X", "duration": 5400})
	if got != "X (1h 30m)" {
		t.Errorf("Render = %q, want X (1h 30m)", got)
	}
}

func TestRenderEpisodeCombo(t *testing.T) {
	data := map[string]interface{}{
		"mediaType":          "episode",
		"parent_media_index": 1,
		"media_index":        5,
	}
	if got := Render("{parent_media_index}E{media_index}", data); got != "S01E05" {
		t.Errorf("Expected collapsed episode code, got %q", got)
	}
}

func TestRenderEpisodeComboInsideLargerTemplate(t *testing.T) {
	data := map[string]interface{}{
		"media_type":         "episode",
		"title":              "Pilot",
		"parent_media_index": 2,
		"media_index":        13,
	}
	got := Render("{title} {parent_media_index}E{media_index}", data)
	if got != "Pilot S02E13" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderEpisodeComboNotCollapsedForMovies(t *testing.T) {
	data := map[string]interface{}{
		"media_type":         "movie",
		"parent_media_index": 1,
		"media_index":        5,
	}
	if got := Render("{parent_media_index}E{media_index}", data); got != "1E5" {
		t.Errorf("Expected raw substitution for non-episode item, got %q", got)
	}
}

func TestRenderIndividualIndexForEpisode(t *testing.T) {
	data := map[string]interface{}{
		"media_type":  "episode",
		"media_index": 5,
	}
	if got := Render("{media_index}", data); got != "E05" {
		t.Errorf("Expected E05, got %q", got)
	}

	data = map[string]interface{}{
		"media_type":         "episode",
		"parent_media_index": 3,
	}
	if got := Render("{parent_media_index}", data); got != "S03" {
		t.Errorf("Expected S03, got %q", got)
	}
}

func TestRenderComboWithMissingIndexStaysLiteral(t *testing.T) {
	data := map[string]interface{}{"media_type": "episode", "parent_media_index": 1}
	got := Render("{parent_media_index}E{media_index}", data)
	if got != "S01E{media_index}" {
		t.Errorf("Expected missing index to stay literal, got %q", got)
	}
}

func TestRenderArrayField(t *testing.T) {
	data := map[string]interface{}{"genres": []string{"Action", "Sci-Fi"}}
	if got := Render("{genres}", data); got != "Action, Sci-Fi" {
		t.Errorf("Expected joined array, got %q", got)
	}
}

func TestRenderNoVariables(t *testing.T) {
	if got := Render("plain text", map[string]interface{}{"title": "X"}); got != "plain text" {
		t.Errorf("Render = %q", got)
	}
}

func TestRenderNilData(t *testing.T) {
	if got := Render("{title}", nil); got != "{title}" {
		t.Errorf("Expected literal with nil data, got %q", got)
	}
}

func TestRenderFieldValueBracesNotReSubstituted(t *testing.T) {
	// A field value that happens to contain {variable} syntax is output
	// verbatim; substitution never runs over substituted text.
	data := map[string]interface{}{
		"title": "Year {year} Special",
		"year":  1999,
	}
	if got := Render("{title} - {year}", data); got != "Year {year} Special - 1999" {
		t.Errorf("Expected one-shot substitution, got %q", got)
	}
}
