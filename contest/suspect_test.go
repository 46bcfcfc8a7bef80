package contest

import (
	"testing"
	"time"

	"contestlog/qso"
)

func TestFindSuspects(t *testing.T) {
	v, _ := VariantFor("cqww")
	records := Score([]qso.Record{
		enrichedRecord(t0, 20, "W1AW", "United States", "NA", 5),
		enrichedRecord(t0.Add(time.Minute), 20, "W1AWT", "United States", "NA", 5), // one edit away
		enrichedRecord(t0.Add(2*time.Minute), 20, "JA1ABC", "Japan", "AS", 25),
		enrichedRecord(t0.Add(3*time.Minute), 40, "W1AWT", "United States", "NA", 5), // other band, W1AW not worked there
	}, v)
	suspects := FindSuspects(records)
	if len(suspects) != 1 {
		t.Fatalf("suspects = %d, want 1: %+v", len(suspects), suspects)
	}
	s := suspects[0]
	if s.Call != "W1AWT" || s.Nearest != "W1AW" || s.Band != 20 {
		t.Fatalf("suspect = %+v", s)
	}
}

func TestFindSuspectsIgnoresInvalidRows(t *testing.T) {
	v, _ := VariantFor("cqww")
	records := Score([]qso.Record{
		enrichedRecord(t0, 20, "W1AW", "United States", "NA", 5),
		enrichedRecord(t0.Add(time.Minute), 20, "W1AW", "United States", "NA", 5), // dup, invalid
	}, v)
	if suspects := FindSuspects(records); len(suspects) != 0 {
		t.Fatalf("duplicates must not be reported as suspects: %+v", suspects)
	}
}
