// Package cty loads and queries the CTY prefix database so contest logs can
// be enriched with country/continent/zone/coordinate metadata using a
// cache-backed longest-prefix lookup. It is the production implementation of
// the pipeline's geo resolver contract.
package cty

import (
	"container/list"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"howett.net/plist"
)

// Info describes the metadata stored for each CTY entry.
type Info struct {
	Country   string  `plist:"Country"`
	Prefix    string  `plist:"Prefix"`
	ADIF      int     `plist:"ADIF"`
	CQZone    int     `plist:"CQZone"`
	ITUZone   int     `plist:"ITUZone"`
	Continent string  `plist:"Continent"`
	Latitude  float64 `plist:"Latitude"`
	Longitude float64 `plist:"Longitude"`
	GMTOffset float64 `plist:"GMTOffset"`
	ExactCall bool    `plist:"ExactCallsign"`
}

// Database holds the plist data plus a read-only prefix trie for
// longest-prefix matching and a bounded LRU over normalized lookups.
type Database struct {
	data map[string]Info
	trie trie

	// cache memoizes lookups (hits and misses) with a bounded LRU.
	cacheMu   sync.Mutex
	cacheList *list.List
	cacheMap  map[string]*list.Element
	cacheCap  int

	totalLookups atomic.Uint64
	cacheHits    atomic.Uint64
	resolved     atomic.Uint64
}

type cacheEntry struct {
	info *Info
	ok   bool
}

type cacheItem struct {
	key   string
	entry cacheEntry
}

// trie is a read-only prefix trie over CTY keys. Walking the callsign bytes
// from the root, the last terminal node seen is the longest matching prefix.
// Nodes live in a slice so child links are small integer indices.
type trie struct {
	nodes []trieNode
}

type trieNode struct {
	next        map[byte]int
	terminalKey string
}

func buildTrie(keys []string) trie {
	tr := trie{nodes: []trieNode{{next: make(map[byte]int)}}}
	for _, key := range keys {
		if key == "" {
			continue
		}
		state := 0
		for i := 0; i < len(key); i++ {
			ch := key[i]
			next := tr.nodes[state].next
			if next == nil {
				next = make(map[byte]int)
				tr.nodes[state].next = next
			}
			child, ok := next[ch]
			if !ok {
				child = len(tr.nodes)
				tr.nodes = append(tr.nodes, trieNode{})
				next[ch] = child
			}
			state = child
		}
		tr.nodes[state].terminalKey = key
	}
	return tr
}

func (tr *trie) longestPrefixKey(cs string) (string, bool) {
	if tr == nil || len(tr.nodes) == 0 || cs == "" {
		return "", false
	}
	state := 0
	best := ""
	for i := 0; i < len(cs); i++ {
		next := tr.nodes[state].next
		if next == nil {
			break
		}
		child, ok := next[cs[i]]
		if !ok {
			break
		}
		state = child
		if tr.nodes[state].terminalKey != "" {
			best = tr.nodes[state].terminalKey
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

const defaultCacheCapacity = 50000

// Metrics summarizes lookup behavior for run summaries.
type Metrics struct {
	TotalLookups uint64
	CacheHits    uint64
	Resolved     uint64
}

// Load reads a cty.plist file into a lookup database.
func Load(path string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cty: open plist: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes CTY data from an io.ReadSeeker (exposed for tests).
// Keys are normalized to uppercase and pre-sorted longest-first; lookups use
// the trie built once at load time.
func LoadFromReader(r io.ReadSeeker) (*Database, error) {
	var raw map[string]Info
	if err := plist.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("cty: decode plist: %w", err)
	}
	data := make(map[string]Info, len(raw))
	for k, v := range raw {
		data[strings.ToUpper(strings.TrimSpace(k))] = v
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) == len(keys[j]) {
			return keys[i] < keys[j]
		}
		return len(keys[i]) > len(keys[j])
	})
	return &Database{
		data:      data,
		trie:      buildTrie(keys),
		cacheCap:  defaultCacheCapacity,
		cacheList: list.New(),
		cacheMap:  make(map[string]*list.Element, defaultCacheCapacity),
	}, nil
}

// Operating qualifiers carry no DXCC identity; a trailing one is removed
// before matching.
var suffixes = []string{"/QRP", "/P", "/MM", "/M", "/AM"}

func stripQualifier(cs string) string {
	cs = strings.ToUpper(strings.TrimSpace(cs))
	for _, suf := range suffixes {
		if strings.HasSuffix(cs, suf) {
			return strings.TrimSuffix(cs, suf)
		}
	}
	return cs
}

// Lookup returns metadata for the callsign or false if unknown. Results are
// memoized (including misses) to cut repeated trie walks during enrichment.
// Safe for concurrent use across pipeline scopes.
func (db *Database) Lookup(cs string) (*Info, bool) {
	cs = stripQualifier(cs)
	db.totalLookups.Add(1)
	if entry, ok := db.cacheGet(cs); ok {
		db.cacheHits.Add(1)
		if entry.ok {
			db.resolved.Add(1)
		}
		return entry.info, entry.ok
	}

	info, ok := db.lookupNoCache(cs)
	if ok {
		db.resolved.Add(1)
	}
	db.cacheStore(cs, cacheEntry{info: info, ok: ok})
	return info, ok
}

func (db *Database) lookupNoCache(cs string) (*Info, bool) {
	if info, ok := db.data[cs]; ok {
		return cloneInfo(info), true
	}
	if key, ok := db.trie.longestPrefixKey(cs); ok {
		info := db.data[key]
		return cloneInfo(info), true
	}
	return nil, false
}

func cloneInfo(info Info) *Info {
	copied := info
	return &copied
}

// Size returns the number of CTY entries loaded.
func (db *Database) Size() int { return len(db.data) }

// LookupMetrics returns a snapshot of lookup counters.
func (db *Database) LookupMetrics() Metrics {
	return Metrics{
		TotalLookups: db.totalLookups.Load(),
		CacheHits:    db.cacheHits.Load(),
		Resolved:     db.resolved.Load(),
	}
}

func (db *Database) cacheGet(key string) (cacheEntry, bool) {
	db.cacheMu.Lock()
	defer db.cacheMu.Unlock()
	elem, ok := db.cacheMap[key]
	if !ok {
		return cacheEntry{}, false
	}
	db.cacheList.MoveToFront(elem)
	return elem.Value.(cacheItem).entry, true
}

func (db *Database) cacheStore(key string, entry cacheEntry) {
	db.cacheMu.Lock()
	defer db.cacheMu.Unlock()
	if elem, ok := db.cacheMap[key]; ok {
		elem.Value = cacheItem{key: key, entry: entry}
		db.cacheList.MoveToFront(elem)
		return
	}
	elem := db.cacheList.PushFront(cacheItem{key: key, entry: entry})
	db.cacheMap[key] = elem
	if db.cacheList.Len() > db.cacheCap {
		oldest := db.cacheList.Back()
		if oldest != nil {
			db.cacheList.Remove(oldest)
			delete(db.cacheMap, oldest.Value.(cacheItem).key)
		}
	}
}
