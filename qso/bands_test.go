package qso

import "testing"

func TestClassifyFrequency(t *testing.T) {
	cases := []struct {
		khz    float64
		band   int
		bandID int
	}{
		{1810, 160, 0},
		{3573, 80, 1},
		{7025.5, 40, 2},
		{14025, 20, 4},
		{21200, 15, 6},
		{28500, 10, 8},
		{14350, 20, 4},  // upper edge inclusive
		{14000, 20, 4},  // lower edge inclusive
		{13999.9, -1, -1},
		{99999, -1, -1},
		{0, -1, -1},
	}
	for _, tc := range cases {
		band, bandID := ClassifyFrequency(tc.khz)
		if band != tc.band || bandID != tc.bandID {
			t.Fatalf("ClassifyFrequency(%v) = (%d, %d), want (%d, %d)",
				tc.khz, band, bandID, tc.band, tc.bandID)
		}
	}
}

func TestBandIDsFollowTableOrder(t *testing.T) {
	prev := -1
	for _, meters := range SupportedBands() {
		band, id := ClassifyFrequency(bandTable[id0(meters)].Min)
		if band != meters {
			t.Fatalf("band %dm classified as %dm", meters, band)
		}
		if id <= prev {
			t.Fatalf("band IDs not strictly increasing: %d after %d", id, prev)
		}
		prev = id
	}
}

func id0(meters int) int {
	for i, entry := range bandTable {
		if entry.Meters == meters {
			return i
		}
	}
	return -1
}

func TestLowBand(t *testing.T) {
	for _, band := range []int{40, 80, 160} {
		if !LowBand(band) {
			t.Fatalf("expected %dm to be a low band", band)
		}
	}
	for _, band := range []int{10, 15, 20, -1} {
		if LowBand(band) {
			t.Fatalf("did not expect %dm to be a low band", band)
		}
	}
}
