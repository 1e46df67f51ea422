// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package models

// FormatDefinition is a user-authored output template bound to a name.
//
// Template is substituted against an item's fields by the template engine.
// SectionID scopes the format to one library section, or "all" for every
// section. Type scopes it to a media-type family (movies/shows/music);
// empty means any. MediaType optionally narrows to a raw upstream media
// type (e.g. "episode").
type FormatDefinition struct {
	Name      string `json:"name" validate:"required"`
	Template  string `json:"template" validate:"required"`
	SectionID string `json:"sectionId"`
	MediaType string `json:"mediaType,omitempty"`
	Type      string `json:"type,omitempty" validate:"omitempty,oneof=movies shows music"`
}

// AppliesTo reports whether the definition matches an item of the given
// media-type family and section. A format with SectionID "all" (or empty)
// matches every section; an empty Type matches every family.
func (f *FormatDefinition) AppliesTo(mediaType, sectionID string) bool {
	if f.Type != "" && f.Type != mediaType {
		return false
	}
	if f.SectionID != "" && f.SectionID != "all" && f.SectionID != sectionID {
		return false
	}
	return true
}

// FormatsFile is the persisted collection of format definitions, grouped by
// the dashboard surface each array feeds.
type FormatsFile struct {
	Downloads     []FormatDefinition `json:"downloads"`
	RecentlyAdded []FormatDefinition `json:"recentlyAdded"`
	Sections      []FormatDefinition `json:"sections"`
	Libraries     []FormatDefinition `json:"libraries"`
	Users         []FormatDefinition `json:"users"`
}

// NewFormatsFile returns an empty formats file with all arrays non-nil so
// it marshals as [] rather than null.
func NewFormatsFile() *FormatsFile {
	return &FormatsFile{
		Downloads:     []FormatDefinition{},
		RecentlyAdded: []FormatDefinition{},
		Sections:      []FormatDefinition{},
		Libraries:     []FormatDefinition{},
		Users:         []FormatDefinition{},
	}
}

// All returns every definition in the file across all groups.
func (ff *FormatsFile) All() []FormatDefinition {
	out := make([]FormatDefinition, 0,
		len(ff.Downloads)+len(ff.RecentlyAdded)+len(ff.Sections)+len(ff.Libraries)+len(ff.Users))
	out = append(out, ff.Downloads...)
	out = append(out, ff.RecentlyAdded...)
	out = append(out, ff.Sections...)
	out = append(out, ff.Libraries...)
	out = append(out, ff.Users...)
	return out
}
