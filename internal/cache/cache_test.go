// Tabularium - Media Server Dashboard Aggregation and Template Formatting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tabularium

package cache

import (
	"fmt"
	"sort"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	_, exists = c.Get("key2")
	if exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New("test", 50*time.Millisecond)

	c.Set("key1", "value1")

	_, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	_, exists = c.Get("key1")
	if exists {
		t.Error("Expected key1 to be expired")
	}
}

func TestCacheExpiredEntryLeavesKeys(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.SetWithTTL("short", "v", 1*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	if _, exists := c.Get("short"); exists {
		t.Error("Expected expired entry to miss")
	}
	for _, k := range c.Keys() {
		if k == "short" {
			t.Error("Expected expired key to be evicted from Keys()")
		}
	}
}

func TestCacheKeysEvictsExpired(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.Set("live", 1)
	c.SetWithTTL("dead", 2, 1*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	keys := c.Keys()
	if len(keys) != 1 || keys[0] != "live" {
		t.Errorf("Expected only [live], got %v", keys)
	}
}

func TestCacheOverwrite(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.Set("key", "old")
	c.Set("key", "new")

	value, _ := c.Get("key")
	if value != "new" {
		t.Errorf("Expected last write to win, got %v", value)
	}
}

func TestCacheDelete(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.Set("key1", "value1")
	if !c.Delete("key1") {
		t.Error("Expected Delete to report removal")
	}
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if c.Delete("key1") {
		t.Error("Expected second Delete to be a no-op")
	}
}

func TestCacheClear(t *testing.T) {
	c := New("test", 1*time.Minute)

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}

	if removed := c.Clear(); removed != 5 {
		t.Errorf("Expected 5 removed, got %d", removed)
	}
	if len(c.Keys()) != 0 {
		t.Error("Expected no keys after Clear")
	}
}

func TestCacheStats(t *testing.T) {
	c := New("test", 1*time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // hit
	c.Get("x") // miss

	stats := c.Stats()
	if stats.Size != 2 {
		t.Errorf("Expected size 2, got %d", stats.Size)
	}
	sort.Strings(stats.Keys)
	if stats.Keys[0] != "a" || stats.Keys[1] != "b" {
		t.Errorf("Expected keys [a b], got %v", stats.Keys)
	}
	if stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New("test", 1*time.Minute)

	if c.HitRate() != 0 {
		t.Error("Expected 0 hit rate with no accesses")
	}

	c.Set("key", "value")
	c.Get("key")
	c.Get("missing")

	if rate := c.HitRate(); rate != 50 {
		t.Errorf("Expected 50%% hit rate, got %f", rate)
	}
}

func TestSetIndependentKeyspaces(t *testing.T) {
	s := NewSet(10*time.Minute, 30*time.Minute, 10*time.Minute)

	s.Media.Set("shared-key", "media")
	s.Metadata.Set("shared-key", "metadata")

	if v, _ := s.Media.Get("shared-key"); v != "media" {
		t.Errorf("Expected media value, got %v", v)
	}
	if v, _ := s.Metadata.Get("shared-key"); v != "metadata" {
		t.Errorf("Expected metadata value, got %v", v)
	}
	if _, exists := s.History.Get("shared-key"); exists {
		t.Error("Expected history cache to be untouched")
	}
}

func TestSetByName(t *testing.T) {
	s := NewSet(time.Minute, time.Minute, time.Minute)

	if s.ByName("media") != s.Media {
		t.Error("Expected media cache")
	}
	if s.ByName("metadata") != s.Metadata {
		t.Error("Expected metadata cache")
	}
	if s.ByName("history") != s.History {
		t.Error("Expected history cache")
	}
	if s.ByName("bogus") != nil {
		t.Error("Expected nil for unknown cache name")
	}
}

func TestSetClearAll(t *testing.T) {
	s := NewSet(time.Minute, time.Minute, time.Minute)

	s.Media.Set("a", 1)
	s.Metadata.Set("b", 2)
	s.History.Set("c", 3)

	if removed := s.ClearAll(); removed != 3 {
		t.Errorf("Expected 3 removed, got %d", removed)
	}
}

func TestSetClearImages(t *testing.T) {
	s := NewSet(time.Minute, time.Minute, time.Minute)

	s.Metadata.Set("poster:item:123", "url-a")
	s.Metadata.Set("poster:item:456", "url-b")
	s.Media.Set("poster:section:7", "url-c")
	s.Media.Set("section-items:7:20", "payload")

	if removed := s.ClearImages("123", ""); removed != 1 {
		t.Errorf("Expected 1 removed for item 123, got %d", removed)
	}
	if _, exists := s.Metadata.Get("poster:item:456"); !exists {
		t.Error("Expected unrelated poster entry to survive")
	}

	if removed := s.ClearImages("", "7"); removed != 1 {
		t.Errorf("Expected 1 removed for section 7, got %d", removed)
	}
	if _, exists := s.Media.Get("section-items:7:20"); !exists {
		t.Error("Expected non-poster entry to survive")
	}
}
