// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package upstream

import (
	"context"
	"errors"
	"testing"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/tabularium/internal/models/tautulli"
)

// failingClient always errors; used to drive the breaker open.
type failingClient struct {
	calls int
}

func (f *failingClient) Ping(context.Context) error { f.calls++; return errors.New("down") }
func (f *failingClient) GetLibraries(context.Context) (*tautulli.TautulliLibraries, error) {
	f.calls++
	return nil, errors.New("down")
}
func (f *failingClient) GetRecentlyAdded(context.Context, int, int) (*tautulli.TautulliRecentlyAdded, error) {
	f.calls++
	return nil, errors.New("down")
}
func (f *failingClient) GetMetadata(context.Context, string) (*tautulli.TautulliMetadata, error) {
	f.calls++
	return nil, errors.New("down")
}
func (f *failingClient) GetUsersTable(context.Context) (*tautulli.TautulliUsersTable, error) {
	f.calls++
	return nil, errors.New("down")
}
func (f *failingClient) GetHistory(context.Context, int, int) (*tautulli.TautulliHistory, error) {
	f.calls++
	return nil, errors.New("down")
}
func (f *failingClient) GetActivity(context.Context) (*tautulli.TautulliActivity, error) {
	f.calls++
	return nil, errors.New("down")
}

// healthyClient returns canned successful responses.
type healthyClient struct{ failingClient }

func (h *healthyClient) GetLibraries(context.Context) (*tautulli.TautulliLibraries, error) {
	return &tautulli.TautulliLibraries{
		Response: tautulli.TautulliLibrariesResponse{
			Result: "success",
			Data:   []tautulli.TautulliLibraryDetail{{SectionID: 1, SectionName: "Movies"}},
		},
	}, nil
}

func TestBreakerPassesThroughSuccess(t *testing.T) {
	bc := NewBreakerClient(&healthyClient{})

	libs, err := bc.GetLibraries(context.Background())
	if err != nil {
		t.Fatalf("GetLibraries failed: %v", err)
	}
	if libs.Response.Data[0].SectionName != "Movies" {
		t.Errorf("Expected Movies, got %s", libs.Response.Data[0].SectionName)
	}
}

func TestBreakerPassesThroughFailure(t *testing.T) {
	bc := NewBreakerClient(&failingClient{})

	if _, err := bc.GetMetadata(context.Background(), "1"); err == nil {
		t.Fatal("Expected wrapped error")
	}
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	client := &failingClient{}
	bc := NewBreakerClient(client)

	// Drive past the 10-request minimum with a 100% failure rate.
	for i := 0; i < 10; i++ {
		_, _ = bc.GetLibraries(context.Background())
	}

	before := client.calls
	_, err := bc.GetLibraries(context.Background())
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("Expected open circuit, got %v", err)
	}
	if client.calls != before {
		t.Error("Expected no upstream call while circuit is open")
	}
}
