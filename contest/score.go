package contest

import (
	"fmt"
	"sort"

	"contestlog/qso"
)

// Score runs the shared scoring algorithm over enriched records: validity
// dedup on (band, call), one first-occurrence pass per multiplier stream,
// variant points gated by validity, and the cumulative columns. Records are
// stably sorted by datetime first, so ties keep their input order and every
// cumulative column is reproducible bit-for-bit.
//
// Each row needs the previous row's running totals, so the loop is
// sequential. Parallelism happens across scopes, not inside one.
func Score(records []qso.Record, v Variant) []qso.Record {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Datetime.Before(records[j].Datetime)
	})

	firstCall := make(map[string]int, len(records))
	firstMult := make([]map[string]int, len(v.Mults))
	for k := range v.Mults {
		firstMult[k] = make(map[string]int, len(records))
	}
	for i := range records {
		r := &records[i]
		callKey := bandKey(r.Band, r.Call)
		if _, seen := firstCall[callKey]; !seen {
			firstCall[callKey] = i
		}
		for k, kind := range v.Mults {
			key := bandKey(r.Band, kind.keyOf(r))
			if _, seen := firstMult[k][key]; !seen {
				firstMult[k][key] = i
			}
		}
	}

	var (
		cumPoints    int
		cumMult      int
		cumValid     int
		prevCumScore int64
	)
	for i := range records {
		r := &records[i]
		r.IsValid = firstCall[bandKey(r.Band, r.Call)] == i

		r.IsDXCC, r.IsZone, r.IsMult, r.NMult = 0, 0, 0, 0
		for k, kind := range v.Mults {
			if firstMult[k][bandKey(r.Band, kind.keyOf(r))] != i {
				continue
			}
			r.NMult++
			switch kind {
			case MultCountry:
				r.IsDXCC = 1
			case MultZone:
				r.IsZone = 1
			default:
				r.IsMult = 1
			}
		}

		// Potential points are computed for every row for auditability; only
		// valid rows credit them.
		potential := v.Points(r)
		r.QSOPoints = 0
		if r.IsValid {
			r.QSOPoints = potential
		}

		cumPoints += r.QSOPoints
		cumMult += r.NMult
		if r.IsValid {
			cumValid++
		}
		r.CumQSOPoints = cumPoints
		r.CumMult = cumMult
		r.CumValidQSOs = cumValid
		r.CumContestScore = int64(cumPoints) * int64(cumMult)
		r.DiffContestScore = r.CumContestScore - prevCumScore
		if i == 0 {
			r.DiffContestScore = 0
		}
		prevCumScore = r.CumContestScore

		// Ratio columns propagate NaN/Inf on zero denominators; downstream
		// consumers decide whether to plot them.
		r.CumPointsPerQSO = float64(cumPoints) / float64(cumValid)
		r.MultWorthPoints = float64(cumPoints) / float64(cumMult)
		r.MultWorthQSOs = r.MultWorthPoints / r.CumPointsPerQSO
	}
	return records
}

func bandKey(band int, key string) string {
	return fmt.Sprintf("%d|%s", band, key)
}
