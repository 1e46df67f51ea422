// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tomtom215/tabularium/internal/config"
)

func TestPlexClientGetSections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Plex-Token"); got != "tok" {
			t.Errorf("Expected token header, got %q", got)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Errorf("Expected JSON accept header, got %q", got)
		}
		if r.URL.Path != "/library/sections" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":2,"Directory":[
			{"key":"1","title":"Movies","type":"movie"},
			{"key":"2","title":"TV Shows","type":"show"}
		]}}`))
	}))
	defer server.Close()

	c := NewPlexClient(&config.PlexConfig{URL: server.URL, Token: "tok"})
	sections, err := c.GetSections(context.Background())
	if err != nil {
		t.Fatalf("GetSections failed: %v", err)
	}
	if len(sections.MediaContainer.Directory) != 2 {
		t.Fatalf("Expected 2 sections, got %d", len(sections.MediaContainer.Directory))
	}
	if sections.MediaContainer.Directory[1].Type != "show" {
		t.Errorf("Expected show type, got %s", sections.MediaContainer.Directory[1].Type)
	}
}

func TestPlexClientGetSectionRecentlyAdded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/library/sections/3/recentlyAdded" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("X-Plex-Container-Size"); got != "20" {
			t.Errorf("Expected container size 20, got %q", got)
		}
		_, _ = w.Write([]byte(`{"MediaContainer":{"size":1,"Metadata":[
			{"ratingKey":"99","title":"New Movie","type":"movie","addedAt":1700000000}
		]}}`))
	}))
	defer server.Close()

	c := NewPlexClient(&config.PlexConfig{URL: server.URL, Token: "tok"})
	content, err := c.GetSectionRecentlyAdded(context.Background(), "3", 20)
	if err != nil {
		t.Fatalf("GetSectionRecentlyAdded failed: %v", err)
	}
	if len(content.MediaContainer.Metadata) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(content.MediaContainer.Metadata))
	}
	if content.MediaContainer.Metadata[0].AddedAt != 1700000000 {
		t.Errorf("Expected addedAt decoded, got %d", content.MediaContainer.Metadata[0].AddedAt)
	}
}

func TestPlexClientHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewPlexClient(&config.PlexConfig{URL: server.URL, Token: "bad"})
	if _, err := c.GetSections(context.Background()); err == nil {
		t.Fatal("Expected error for HTTP 401")
	}
}
