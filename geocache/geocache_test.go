package geocache

import (
	"path/filepath"
	"testing"

	"contestlog/cty"
)

type countingResolver struct {
	calls map[string]cty.Info
	hits  int
}

func (r *countingResolver) Lookup(call string) (*cty.Info, bool) {
	r.hits++
	info, ok := r.calls[call]
	if !ok {
		return nil, false
	}
	copied := info
	return &copied, true
}

func TestLookupMemoizesHitsAndMisses(t *testing.T) {
	inner := &countingResolver{calls: map[string]cty.Info{
		"W1AW": {Country: "United States", Continent: "NA", CQZone: 5},
	}}
	cache, err := Open(filepath.Join(t.TempDir(), "geocache"), inner)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer cache.Close()

	info, ok := cache.Lookup("W1AW")
	if !ok || info.Country != "United States" {
		t.Fatalf("first lookup = %v, %v", info, ok)
	}
	info, ok = cache.Lookup("W1AW")
	if !ok || info.Country != "United States" || info.CQZone != 5 {
		t.Fatalf("cached lookup = %v, %v", info, ok)
	}
	if inner.hits != 1 {
		t.Fatalf("inner resolver hit %d times, want 1", inner.hits)
	}

	// Misses are memoized too.
	if _, ok := cache.Lookup("ZZ9ZZZ"); ok {
		t.Fatalf("ZZ9ZZZ should not resolve")
	}
	if _, ok := cache.Lookup("ZZ9ZZZ"); ok {
		t.Fatalf("ZZ9ZZZ should not resolve from cache")
	}
	if inner.hits != 2 {
		t.Fatalf("inner resolver hit %d times, want 2", inner.hits)
	}

	stats := cache.Stats()
	if stats.Hits != 2 || stats.Misses != 2 {
		t.Fatalf("stats = %+v, want 2 hits and 2 misses", stats)
	}
}

func TestCacheSurvivesReopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "geocache")
	inner := &countingResolver{calls: map[string]cty.Info{
		"W1AW": {Country: "United States", Continent: "NA"},
	}}

	cache, err := Open(dir, inner)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := cache.Lookup("W1AW"); !ok {
		t.Fatalf("lookup failed")
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	cache, err = Open(dir, inner)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer cache.Close()
	if _, ok := cache.Lookup("W1AW"); !ok {
		t.Fatalf("lookup after reopen failed")
	}
	if inner.hits != 1 {
		t.Fatalf("inner resolver hit %d times across reopen, want 1", inner.hits)
	}
}
