package contest

import (
	"fmt"

	"contestlog/qso"
)

// AddPreviousCallStats fills the previous-call timing columns for valid rows:
// minutes since the same callsign was last worked (on any band) and the band
// transition label used directly as a plot category. The first valid contact
// with a call keeps NaN minutes and a -1 previous band; "no previous call" is
// not the same thing as "zero minutes ago". Invalid rows are left untouched
// (NaN/-1/""), the join-back the storage layer sees as null.
//
// Records must already be in datetime order (Score sorts them).
func AddPreviousCallStats(records []qso.Record) []qso.Record {
	lastSeen := make(map[string]int, len(records))
	for i := range records {
		r := &records[i]
		if !r.IsValid {
			continue
		}
		if prev, ok := lastSeen[r.Call]; ok {
			r.MinutesFromPreviousCall = r.Datetime.Sub(records[prev].Datetime).Minutes()
			r.BandFromPreviousCall = records[prev].Band
		}
		r.BandTransitionFromPreviousCall = fmt.Sprintf(
			"%d → %d", r.BandFromPreviousCall, r.Band)
		lastSeen[r.Call] = i
	}
	return records
}
