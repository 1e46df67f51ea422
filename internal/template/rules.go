// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package template

// formatterFunc renders one resolved field value under a formatting rule.
type formatterFunc func(value interface{}, formatSpec string, data map[string]interface{}) string

// fieldRule binds a field name to its formatter. Rules are consulted in
// order; the first matching rule wins. Fields with no rule render raw.
type fieldRule struct {
	match  func(key string, data map[string]interface{}) bool
	format formatterFunc
}

// timestampKeys are the upstream field names that carry timestamp-like
// values under their various naming variants.
var timestampKeys = map[string]bool{
	"addedAt":                 true,
	"added_at":                true,
	"updated_at":              true,
	"last_viewed_at":          true,
	"originally_available_at": true,
	"last_seen":               true,
	"last_played_at":          true,
}

// episodeLikeTypes are the raw media types whose index fields render as
// season/episode codes.
var episodeLikeTypes = map[string]bool{
	"episode": true,
	"season":  true,
}

// fieldRules is the rule table driving per-field formatting. Keeping the
// special key set data-driven (rather than branching in the engine) makes
// the formatting rules testable and extensible in one place.
var fieldRules = []fieldRule{
	{
		match: func(key string, _ map[string]interface{}) bool {
			return timestampKeys[key]
		},
		format: func(value interface{}, formatSpec string, _ map[string]interface{}) string {
			return FormatDate(value, formatSpec)
		},
	},
	{
		match: func(key string, _ map[string]interface{}) bool {
			return key == "duration"
		},
		format: func(value interface{}, _ string, _ map[string]interface{}) string {
			return FormatDuration(value)
		},
	},
	{
		match: func(key string, data map[string]interface{}) bool {
			return key == "parent_media_index" && isEpisodeLike(data)
		},
		format: func(value interface{}, _ string, _ map[string]interface{}) string {
			return FormatSeasonIndex(value)
		},
	},
	{
		match: func(key string, data map[string]interface{}) bool {
			return key == "media_index" && isEpisodeLike(data)
		},
		format: func(value interface{}, _ string, _ map[string]interface{}) string {
			return FormatEpisodeIndex(value)
		},
	},
}

// isEpisodeLike reports whether the item's media type renders index fields
// as season/episode codes. Both naming variants of the type field count.
func isEpisodeLike(data map[string]interface{}) bool {
	for _, key := range []string{"media_type", "mediaType", "type"} {
		if t, ok := data[key].(string); ok && episodeLikeTypes[t] {
			return true
		}
	}
	return false
}

// ruleFor returns the formatter for a key, or nil when the field renders raw.
func ruleFor(key string, data map[string]interface{}) formatterFunc {
	for _, rule := range fieldRules {
		if rule.match(key, data) {
			return rule.format
		}
	}
	return nil
}
