package contest

import (
	"encoding/binary"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/zeebo/xxh3"

	"contestlog/calendar"
	"contestlog/qso"
)

// Scope identifies one dataset: a single operator in a single contest, year
// and mode. Scopes are never mixed during scoring; concatenation for
// comparison happens downstream.
type Scope struct {
	Callsign string
	Contest  string
	Year     int
	Mode     string
}

func (s Scope) String() string {
	return fmt.Sprintf("%s/%s/%d/%s", s.Callsign, s.Contest, s.Year, s.Mode)
}

// Result is the outcome of one pipeline run. DroppedRows counts contacts
// removed for unresolvable callsigns; they are reported, never silently
// absorbed.
type Result struct {
	Scope       Scope
	Records     []qso.Record
	Start       time.Time // contest weekend start, Saturday 00:00 UTC
	End         time.Time
	DroppedRows int
	Suspects    []Suspect
	Fingerprint uint64 // xxh3 over the scored columns; equal inputs hash equal
}

// EnrichAndScore is the single pipeline entry point. It runs the stages in
// fixed order (geo enrichment, contest-hour normalization, variant scoring,
// previous-call analysis) and is deterministic: running it twice over the
// same raw log yields byte-identical records and the same fingerprint.
func EnrichAndScore(raw []qso.Record, scope Scope, rule calendar.Rule, res GeoResolver) (*Result, error) {
	variant, ok := VariantFor(scope.Contest)
	if !ok {
		return nil, &ConfigurationError{
			Contest:  scope.Contest,
			Year:     scope.Year,
			Callsign: scope.Callsign,
			Mode:     scope.Mode,
			Reason:   fmt.Sprintf("unknown contest (have %s)", strings.Join(VariantNames(), ", ")),
		}
	}
	start, end, err := calendar.ContestDates(rule, scope.Year)
	if err != nil {
		return nil, &ConfigurationError{
			Contest:  scope.Contest,
			Year:     scope.Year,
			Callsign: scope.Callsign,
			Mode:     scope.Mode,
			Reason:   "no contest weekend for calendar rule",
			Err:      err,
		}
	}

	log.Printf("contest: %s: processing %d raw rows", scope, len(raw))
	enriched, dropped, err := Enrich(raw, start, variant, res)
	if err != nil {
		return nil, err
	}
	scored := Score(enriched, variant)
	scored = AddPreviousCallStats(scored)

	result := &Result{
		Scope:       scope,
		Records:     scored,
		Start:       start,
		End:         end,
		DroppedRows: dropped,
		Suspects:    FindSuspects(scored),
		Fingerprint: fingerprint(scored),
	}
	log.Printf("contest: %s: %d rows scored, %d dropped, %d suspect calls",
		scope, len(scored), dropped, len(result.Suspects))
	return result, nil
}

// fingerprint hashes the order-sensitive scored columns so idempotence can be
// checked cheaply (identical inputs must produce the identical digest).
func fingerprint(records []qso.Record) uint64 {
	h := xxh3.New()
	var buf [8]byte
	writeInt := func(v int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		_, _ = h.Write(buf[:])
	}
	for i := range records {
		r := &records[i]
		_, _ = h.Write([]byte(r.Call))
		writeInt(r.Datetime.Unix())
		writeInt(int64(r.Band))
		writeInt(int64(boolToInt(r.IsValid)))
		writeInt(int64(r.QSOPoints))
		writeInt(int64(r.NMult))
		writeInt(r.CumContestScore)
		writeFloat(r.Hour)
		writeFloat(r.MinutesFromPreviousCall)
	}
	return h.Sum64()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
