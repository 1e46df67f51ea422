// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

// Package formats persists user-authored format definitions in one flat
// JSON file. A corrupt or missing file degrades to empty defaults in
// memory; it never crashes the process or blocks serving.
package formats

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"

	"github.com/tomtom215/tabularium/internal/logging"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/validation"
)

// Store is the on-disk format definition store. Reads serve from the
// in-memory copy; saves validate, write atomically (temp file + rename),
// and then replace the in-memory copy.
type Store struct {
	mu      sync.RWMutex
	path    string
	formats *models.FormatsFile
}

// NewStore creates a store backed by the JSON file at path and loads it.
// A missing file starts empty silently; a corrupt file starts empty with
// a warning.
func NewStore(path string) *Store {
	s := &Store{
		path:    path,
		formats: models.NewFormatsFile(),
	}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Warn().Err(err).Str("path", s.path).Msg("Failed to read formats file, starting empty")
		}
		return
	}

	loaded := models.NewFormatsFile()
	if err := json.Unmarshal(data, loaded); err != nil {
		logging.Warn().Err(err).Str("path", s.path).Msg("Formats file is corrupt, starting empty")
		return
	}
	normalize(loaded)
	s.formats = loaded
}

// GetFormats returns a copy of the current format definitions. The copy
// shares no slices with the store, so callers can mutate it freely before
// passing it back to SaveFormats.
func (s *Store) GetFormats() *models.FormatsFile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFormats(s.formats)
}

// SaveFormats validates and persists new format definitions, replacing the
// whole file. The write is atomic: a temp file in the same directory is
// renamed over the target so a crash mid-write cannot corrupt the store.
func (s *Store) SaveFormats(ff *models.FormatsFile) error {
	if ff == nil {
		return fmt.Errorf("formats must not be nil")
	}
	normalize(ff)

	for _, def := range ff.All() {
		if err := validation.ValidateStruct(&def); err != nil {
			return fmt.Errorf("invalid format definition %q: %w", def.Name, err)
		}
	}

	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal formats: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write formats file: %w", err)
	}
	s.formats = copyFormats(ff)

	logging.Info().Str("path", s.path).Int("definitions", len(ff.All())).Msg("Saved format definitions")
	return nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// writeAtomic writes data to path via a temp file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// normalize ensures all groups are non-nil so the file always marshals
// with every array present.
func normalize(ff *models.FormatsFile) {
	if ff.Downloads == nil {
		ff.Downloads = []models.FormatDefinition{}
	}
	if ff.RecentlyAdded == nil {
		ff.RecentlyAdded = []models.FormatDefinition{}
	}
	if ff.Sections == nil {
		ff.Sections = []models.FormatDefinition{}
	}
	if ff.Libraries == nil {
		ff.Libraries = []models.FormatDefinition{}
	}
	if ff.Users == nil {
		ff.Users = []models.FormatDefinition{}
	}
}

func copyFormats(ff *models.FormatsFile) *models.FormatsFile {
	out := &models.FormatsFile{
		Downloads:     make([]models.FormatDefinition, len(ff.Downloads)),
		RecentlyAdded: make([]models.FormatDefinition, len(ff.RecentlyAdded)),
		Sections:      make([]models.FormatDefinition, len(ff.Sections)),
		Libraries:     make([]models.FormatDefinition, len(ff.Libraries)),
		Users:         make([]models.FormatDefinition, len(ff.Users)),
	}
	copy(out.Downloads, ff.Downloads)
	copy(out.RecentlyAdded, ff.RecentlyAdded)
	copy(out.Sections, ff.Sections)
	copy(out.Libraries, ff.Libraries)
	copy(out.Users, ff.Users)
	return out
}
