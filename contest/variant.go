// Package contest implements the feature-engineering pipeline for contest
// logs: geo/band/hour enrichment, per-variant scoring and multiplier
// detection, cumulative statistics and previous-call timing analysis. One
// call to EnrichAndScore processes one (callsign, contest, year, mode) scope
// deterministically.
package contest

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"contestlog/qso"
)

// MultKind identifies a multiplier stream. A variant may run several streams
// at once (CQ WW credits country and zone independently); each stream dedups
// its key per band on first chronological occurrence.
type MultKind int

const (
	// MultCountry dedups on (band, DXCC country).
	MultCountry MultKind = iota
	// MultZone dedups on (band, CQ zone).
	MultZone
	// MultPrefix dedups on (band, WPX prefix).
	MultPrefix
	// MultExchange dedups on (band, received exchange).
	MultExchange
)

func (k MultKind) keyOf(r *qso.Record) string {
	switch k {
	case MultCountry:
		return r.Country
	case MultZone:
		return strconv.Itoa(r.CQZone)
	case MultPrefix:
		return r.Prefix
	case MultExchange:
		return r.Exchange
	}
	return ""
}

// PointsFunc computes the potential QSO points for an enriched record,
// ignoring validity; the scoring engine zeroes points on duplicate rows.
type PointsFunc func(r *qso.Record) int

// Variant bundles everything contest-specific: the multiplier streams and the
// points table. All variants share the same dedup and cumulative machinery.
type Variant struct {
	Name       string
	Mults      []MultKind
	Points     PointsFunc
	UsesPrefix bool // WPX prefix extraction needed during enrichment
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Variant{}
)

// Register adds or replaces a contest variant. The built-in table covers
// CQ WW, CQ WPX, IARU HF and ARRL DX; callers with a contest-specific points
// table (the ARRL DX "generic" case) register their own entry here.
func Register(v Variant) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(v.Name)] = v
}

// VariantFor resolves a contest name to its variant.
func VariantFor(name string) (Variant, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	v, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return v, ok
}

// VariantNames lists registered contest names, sorted.
func VariantNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(Variant{
		Name:   "cqww",
		Mults:  []MultKind{MultCountry, MultZone},
		Points: cqwwPoints,
	})
	Register(Variant{
		Name:       "cqwpx",
		Mults:      []MultKind{MultPrefix},
		Points:     cqwpxPoints,
		UsesPrefix: true,
	})
	Register(Variant{
		Name:   "iaru",
		Mults:  []MultKind{MultExchange},
		Points: iaruPoints,
	})
	Register(Variant{
		Name:   "arrldx",
		Mults:  []MultKind{MultExchange},
		Points: arrldxPoints,
	})
}

// cqwwPoints: a different continent is worth 3; within the operator's own
// continent, NA stations get 2 and everyone else 1, except that working one's
// own country is worth 0 (still a valid, band-unique QSO and still eligible
// as a multiplier).
func cqwwPoints(r *qso.Record) int {
	if r.Continent != r.MyContinent {
		return 3
	}
	if r.MyContinent == "NA" {
		return 2
	}
	if r.Country != r.MyCountry {
		return 1
	}
	return 0
}

// cqwpxPoints: 3 across continents, 1 within, doubled on the low bands
// (40/80/160).
func cqwpxPoints(r *qso.Record) int {
	points := 1
	if r.Continent != r.MyContinent {
		points = 3
	}
	if qso.LowBand(r.Band) {
		points *= 2
	}
	return points
}

// iaruPoints: 5 across continents; within the continent a different exchange
// is worth 3 from another country but only 1 from the operator's own country;
// matching exchanges (same zone/society) are always worth 1.
func iaruPoints(r *qso.Record) int {
	if r.Continent != r.MyContinent {
		return 5
	}
	if r.Exchange != r.MyExchange {
		if r.Country == r.MyCountry {
			return 1
		}
		return 3
	}
	return 1
}

// arrldxPoints: the published ARRL DX rule, 3 points per QSO across the
// DX/W-VE boundary and 0 within one's own country. Callers needing a
// different table register their own variant.
func arrldxPoints(r *qso.Record) int {
	if r.Country == r.MyCountry {
		return 0
	}
	return 3
}
