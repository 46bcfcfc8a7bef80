package qso

import "fmt"

// BandInfo describes an amateur radio band by its meter label and inclusive
// frequency range in kHz. The table order defines the ordinal band ID used for
// stable band ordering in tables and plots.
type BandInfo struct {
	Meters int     // band label in meters (e.g. 20)
	Min    float64 // minimum frequency in kHz, inclusive
	Max    float64 // maximum frequency in kHz, inclusive
}

var bandTable = []BandInfo{
	{Meters: 160, Min: 1800, Max: 2000},
	{Meters: 80, Min: 3500, Max: 4000},
	{Meters: 40, Min: 7000, Max: 7300},
	{Meters: 30, Min: 10100, Max: 10150},
	{Meters: 20, Min: 14000, Max: 14350},
	{Meters: 17, Min: 18068, Max: 18168},
	{Meters: 15, Min: 21000, Max: 21450},
	{Meters: 12, Min: 24890, Max: 24990},
	{Meters: 10, Min: 28000, Max: 29700},
	{Meters: 6, Min: 50000, Max: 54000},
	{Meters: 2, Min: 144000, Max: 148000},
}

func init() {
	// Overlapping ranges are a table-editing mistake, not a runtime condition.
	for i := 1; i < len(bandTable); i++ {
		if bandTable[i].Min <= bandTable[i-1].Max {
			panic(fmt.Sprintf("qso: band table overlap between %dm and %dm",
				bandTable[i-1].Meters, bandTable[i].Meters))
		}
	}
}

// ClassifyFrequency maps a frequency in kHz to its band label (meters) and the
// ordinal band ID. Frequencies outside every known band return (-1, -1); real
// logs contain out-of-band contacts and they must not abort processing.
func ClassifyFrequency(khz float64) (band, bandID int) {
	for i, entry := range bandTable {
		if khz >= entry.Min && khz <= entry.Max {
			return entry.Meters, i
		}
	}
	return -1, -1
}

// SupportedBands returns the meter labels of all tracked bands in table order.
func SupportedBands() []int {
	meters := make([]int, len(bandTable))
	for i, entry := range bandTable {
		meters[i] = entry.Meters
	}
	return meters
}

// LowBand reports whether the band is one of the low bands that double
// QSO points in CQ WPX (40, 80 and 160 meters).
func LowBand(band int) bool {
	switch band {
	case 40, 80, 160:
		return true
	}
	return false
}
