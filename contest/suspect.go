package contest

import (
	"github.com/agnivade/levenshtein"

	"contestlog/qso"
)

// Suspect flags a valid QSO whose callsign is one edit away from a call
// already worked on the same band. These are frequently busted copies of the
// same station that slipped past the duplicate check; they are reported for
// review and never affect scoring.
type Suspect struct {
	Call     string
	Band     int
	Nearest  string // the earlier worked call one edit away
	RowIndex int
}

// FindSuspects scans scored records in order and reports near-duplicate
// callsigns per band.
func FindSuspects(records []qso.Record) []Suspect {
	workedByBand := make(map[int][]string)
	var suspects []Suspect
	for i := range records {
		r := &records[i]
		if !r.IsValid {
			continue
		}
		for _, earlier := range workedByBand[r.Band] {
			if earlier == r.Call {
				continue
			}
			if levenshtein.ComputeDistance(earlier, r.Call) == 1 {
				suspects = append(suspects, Suspect{
					Call:     r.Call,
					Band:     r.Band,
					Nearest:  earlier,
					RowIndex: i,
				})
				break
			}
		}
		workedByBand[r.Band] = append(workedByBand[r.Band], r.Call)
	}
	return suspects
}
