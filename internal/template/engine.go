// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package template implements the substitution engine behind user-authored
// format definitions, plus the type-aware field formatters it dispatches to
// (dates, durations, episode codes, arrays).
//
// Templates address item fields as {identifier} or {identifier:modifier}:
//
//	"{title} ({year}) added {added_at:relative}"
//
// Missing fields stay in the output as literal {identifier} text so broken
// templates are diagnosable; present-but-null fields render empty.
package template

import (
	"regexp"
	"strings"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/metrics"
)

// variablePattern matches {identifier} and {identifier:modifier}. No
// nesting, non-greedy by construction since braces are excluded from the
// identifier and modifier classes.
var variablePattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)(?::([A-Za-z0-9_]+))?\}`)

// episodeComboLiteral is the two-variable combination that collapses into a
// single "SxxEyy" code for episode-like items.
const episodeComboLiteral = "{parent_media_index}E{media_index}"

// Render substitutes fields from data into tmpl. An empty template renders
// empty. A template repeating {title} twice substitutes every occurrence.
//
// Substitution is a single pass over the template text, so field values
// containing literal {brace} text are emitted verbatim and never
// re-substituted.
//
// Per-variable failures are contained: a panic while formatting one field
// is logged and renders that variable as the empty string without aborting
// the rest of the template.
func Render(tmpl string, data map[string]interface{}) string {
	if tmpl == "" {
		return ""
	}
	metrics.TemplateRenders.Inc()

	result := tmpl

	// The season/episode pair collapses first so the "E" separator is not
	// doubled by the individual index formatters.
	if strings.Contains(result, episodeComboLiteral) && isEpisodeLike(data) {
		season, haveSeason := data["parent_media_index"]
		episode, haveEpisode := data["media_index"]
		if haveSeason && haveEpisode && season != nil && episode != nil {
			result = strings.ReplaceAll(result, episodeComboLiteral, FormatEpisodeCode(season, episode))
		}
	}

	return variablePattern.ReplaceAllStringFunc(result, func(literal string) string {
		match := variablePattern.FindStringSubmatch(literal)
		key := match[1]
		formatSpec := match[2]
		if formatSpec == "" {
			formatSpec = "default"
		}

		value, present := data[key]
		if !present {
			// Missing field: keep the literal text visible.
			return literal
		}
		return renderVariable(key, formatSpec, value, data)
	})
}

// renderVariable formats one resolved field value, containing any panic
// from the formatter to an empty-string substitution.
func renderVariable(key, formatSpec string, value interface{}, data map[string]interface{}) (out string) {
	defer func() {
		if r := recover(); r != nil {
			metrics.TemplateVariableErrors.Inc()
			logging.Error().Str("variable", key).Interface("panic", r).Msg("Template variable formatting failed")
			out = ""
		}
	}()

	if value == nil {
		return ""
	}
	if rule := ruleFor(key, data); rule != nil {
		return rule(value, formatSpec, data)
	}
	return stringify(value)
}
