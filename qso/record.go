// Package qso defines the canonical contest QSO record and the frequency/band
// helpers shared by the parsing, enrichment and scoring stages.
package qso

import (
	"math"
	"strings"
	"time"
)

// Record represents one contact in the working log. A raw record carries only
// the parsed Cabrillo fields; every pipeline stage fills in its own derived
// fields and never touches fields owned by another stage.
type Record struct {
	// Parsed from the raw log line.
	Datetime   time.Time // QSO timestamp, UTC; all ordering keys off this
	Frequency  float64   // kHz
	Mode       string    // CW, PH, ...
	MyCall     string    // operator's own callsign
	Call       string    // contacted station
	RSTSent    string
	RSTRcvd    string
	MyExchange string // sent exchange (zone, serial, society, ...)
	Exchange   string // received exchange

	// Band classification.
	Band   int // band in meters (e.g. 20), -1 when out of any known band
	BandID int // ordinal index into the band table, -1 when unclassified

	// Geo enrichment for Call (and the operator's own side).
	Country     string
	Continent   string
	CQZone      int
	ITUZone     int
	ADIF        int
	Latitude    float64
	Longitude   float64
	Locator     string
	MyCountry   string
	MyContinent string
	Distance    float64 // short-path great-circle distance, km
	DistanceLP  float64 // long-path distance, km
	Heading     float64 // short-path initial bearing, degrees
	HeadingLP   float64 // long-path bearing, degrees
	Sunrise     time.Time // at the contacted station's locator, QSO date
	Sunset      time.Time

	// Contest features.
	Hour   float64 // fractional hours since contest start, never clamped
	Prefix string  // WPX prefix, filled only for prefix-scored contests

	IsValid   bool // first band+call occurrence
	QSOPoints int  // points actually credited (zero when invalid)
	IsDXCC    int  // 0/1, country multiplier (CQ WW)
	IsZone    int  // 0/1, zone multiplier (CQ WW)
	IsMult    int  // 0/1, single-stream multiplier (WPX prefix, exchange)
	NMult     int  // multipliers credited by this row

	CumQSOPoints    int
	CumMult         int
	CumValidQSOs    int
	CumContestScore int64
	DiffContestScore int64
	CumPointsPerQSO float64 // NaN/Inf propagate, never raised
	MultWorthPoints float64
	MultWorthQSOs   float64

	// Previous-call features, valid rows only; see the contest package.
	MinutesFromPreviousCall        float64 // NaN when no previous call
	BandFromPreviousCall           int     // -1 when no previous call
	BandTransitionFromPreviousCall string  // "" on invalid rows
}

// NewRecord builds a raw record with the derived numeric fields set to their
// "not computed" sentinels so a half-enriched row is distinguishable from a
// genuinely zero-valued one.
func NewRecord(dt time.Time, freqKHz float64, mode, myCall, call string) Record {
	return Record{
		Datetime:                dt.UTC(),
		Frequency:               freqKHz,
		Mode:                    strings.ToUpper(strings.TrimSpace(mode)),
		MyCall:                  NormalizeCallsign(myCall),
		Call:                    NormalizeCallsign(call),
		Band:                    -1,
		BandID:                  -1,
		BandFromPreviousCall:    -1,
		MinutesFromPreviousCall: math.NaN(),
		CumPointsPerQSO:         math.NaN(),
		MultWorthPoints:         math.NaN(),
		MultWorthQSOs:           math.NaN(),
	}
}

// NormalizeCallsign uppercases the call, trims whitespace and drops a trailing
// slash left over from sloppy logging.
func NormalizeCallsign(call string) string {
	normalized := strings.ToUpper(strings.TrimSpace(call))
	normalized = strings.TrimSuffix(normalized, "/")
	return strings.TrimSpace(normalized)
}
