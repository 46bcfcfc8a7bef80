// Package geocache wraps a callsign resolver with a persistent Pebble-backed
// memo. Contest analysis hits the same few thousand callsigns year after
// year; caching resolved metadata (and misses) on disk keeps repeat runs off
// the CTY trie entirely. The cache is read-mostly and safe to share across
// concurrently processed scopes.
package geocache

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/pebble"
	jsoniter "github.com/json-iterator/go"

	"contestlog/cty"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const callPrefix = "c|"

// missMarker is stored for callsigns the inner resolver could not resolve so
// repeated unresolvable calls do not retry the full lookup.
var missMarker = []byte{0}

// Resolver is the inner lookup the cache falls back to (normally
// *cty.Database).
type Resolver interface {
	Lookup(call string) (*cty.Info, bool)
}

// Cache is a persistent memoizing resolver.
type Cache struct {
	db    *pebble.DB
	inner Resolver

	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats reports cache effectiveness counters.
type Stats struct {
	Hits   uint64 // served from the pebble store
	Misses uint64 // delegated to the inner resolver
}

// Open opens (or creates) the cache at dir, wrapping inner.
func Open(dir string, inner Resolver) (*Cache, error) {
	if inner == nil {
		return nil, errors.New("geocache: nil inner resolver")
	}
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("geocache: open pebble at %s: %w", dir, err)
	}
	return &Cache{db: db, inner: inner}, nil
}

// Close flushes and closes the underlying store.
func (c *Cache) Close() error { return c.db.Close() }

// Lookup implements the resolver contract. Storage errors degrade to a plain
// inner lookup; a broken cache must never change resolution results.
func (c *Cache) Lookup(call string) (*cty.Info, bool) {
	key := []byte(callPrefix + strings.ToUpper(strings.TrimSpace(call)))

	value, closer, err := c.db.Get(key)
	if err == nil {
		defer closer.Close()
		c.hits.Add(1)
		if len(value) == len(missMarker) && value[0] == missMarker[0] {
			return nil, false
		}
		var info cty.Info
		if err := json.Unmarshal(value, &info); err == nil {
			return &info, true
		}
		// Corrupt entry: fall through and rewrite it.
		c.hits.Add(^uint64(0)) // undo the hit
	} else if err != pebble.ErrNotFound {
		return c.inner.Lookup(call)
	}

	c.misses.Add(1)
	info, ok := c.inner.Lookup(call)
	if !ok {
		_ = c.db.Set(key, missMarker, pebble.NoSync)
		return nil, false
	}
	if encoded, err := json.Marshal(info); err == nil {
		_ = c.db.Set(key, encoded, pebble.NoSync)
	}
	return info, true
}

// Stats returns a snapshot of the hit/miss counters.
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
