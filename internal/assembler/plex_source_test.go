// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package assembler

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/tabularium/internal/cache"
	"github.com/tomtom215/tabularium/internal/formats"
	"github.com/tomtom215/tabularium/internal/models"
	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

type stubPlex struct {
	sections      func(ctx context.Context) (*models.PlexLibrarySectionsResponse, error)
	recentlyAdded func(ctx context.Context, sectionKey string, count int) (*models.PlexSectionContentResponse, error)
}

func (s *stubPlex) Ping(_ context.Context) error { return nil }

func (s *stubPlex) GetSections(ctx context.Context) (*models.PlexLibrarySectionsResponse, error) {
	if s.sections == nil {
		return nil, errors.New("stub method not set")
	}
	return s.sections(ctx)
}

func (s *stubPlex) GetSectionRecentlyAdded(ctx context.Context, sectionKey string, count int) (*models.PlexSectionContentResponse, error) {
	if s.recentlyAdded == nil {
		return nil, errors.New("stub method not set")
	}
	return s.recentlyAdded(ctx, sectionKey, count)
}

// With a Plex client configured, section items come from the media server
// directly; Tautulli still provides the section list and metadata.
func TestRecentlyAddedUsesPlexWhenConfigured(t *testing.T) {
	stub := &stubTautulli{
		libraries: func(_ context.Context) (*tautulli.TautulliLibraries, error) {
			return librariesResponse(tautulli.TautulliLibraryDetail{
				SectionID: 3, SectionName: "Movies", SectionType: "movie",
			}), nil
		},
		metadata: func(_ context.Context, ratingKey string) (*tautulli.TautulliMetadata, error) {
			return metadataResponse(tautulli.TautulliMetadataData{RatingKey: ratingKey}), nil
		},
	}
	plex := &stubPlex{
		recentlyAdded: func(_ context.Context, sectionKey string, count int) (*models.PlexSectionContentResponse, error) {
			if sectionKey != "3" {
				t.Errorf("Expected section key 3, got %s", sectionKey)
			}
			if count != 10 {
				t.Errorf("Expected count 10, got %d", count)
			}
			return &models.PlexSectionContentResponse{
				MediaContainer: models.PlexSectionContentContainer{
					Size: 1,
					Metadata: []models.PlexMetadataItem{
						{RatingKey: "99", Type: "movie", Title: "From Plex", AddedAt: 1700000000, Duration: 5400000},
					},
				},
			}, nil
		},
	}

	caches := cache.NewSet(time.Minute, time.Minute, time.Minute)
	store := formats.NewStore(filepath.Join(t.TempDir(), "formats.json"))
	a := New(stub, plex, caches, cache.NewRefreshCoordinator(), store)

	payload, _, err := a.RecentlyAdded(context.Background(), "movies", "", 10, false)
	if err != nil {
		t.Fatalf("RecentlyAdded failed: %v", err)
	}
	if payload.Count != 1 || payload.Items[0].Raw["title"] != "From Plex" {
		t.Fatalf("Expected the Plex item, got %+v", payload.Items)
	}
	if stub.recentCalls.Load() != 0 {
		t.Error("Expected no Tautulli section fetches when Plex is configured")
	}
}
