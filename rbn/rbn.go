// Package rbn parses archived Reverse Beacon Network spot dumps (the daily
// CSV files) into typed records for propagation analysis. Spots are
// classified against the same band table as the contest log so both datasets
// share band ordering, and can be aligned on the contest-hour axis.
package rbn

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"contestlog/calendar"
	"contestlog/qso"
)

// Spot is one RBN skimmer report.
type Spot struct {
	Spotter          string  // skimmer callsign
	SpotterPrefix    string
	SpotterContinent string
	Frequency        float64 // kHz
	Band             int     // meters, -1 when out of any known band
	BandID           int
	DX               string // station heard
	DXPrefix         string
	DXContinent      string
	Mode             string
	SNR              int // dB
	Time             time.Time
	CWSpeed          int     // WPM, 0 when absent
	Hour             float64 // contest hour, filled by ComputeHours
}

// columns of the RBN daily dump, in file order.
const (
	colSpotter = iota
	colSpotterPfx
	colSpotterCont
	colFreq
	colBand
	colDX
	colDXPfx
	colDXCont
	colMode
	colSNR
	colDate
	colSpeed
	numColumns
)

// ParseCSV reads an RBN daily dump. Malformed rows are skipped and counted;
// one bad skimmer line must not lose a day of spots.
func ParseCSV(r io.Reader) ([]Spot, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // dumps vary between 12 and 13 columns
	reader.TrimLeadingSpace = true

	var spots []Spot
	skipped := 0
	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, skipped, fmt.Errorf("rbn: read csv line %d: %w", line+1, err)
		}
		line++
		if line == 1 && strings.EqualFold(fields[colSpotter], "callsign") {
			continue // header row
		}
		spot, ok := parseRow(fields)
		if !ok {
			skipped++
			continue
		}
		spots = append(spots, spot)
	}
	if skipped > 0 {
		log.Printf("rbn: skipped %d malformed spot rows", skipped)
	}
	return spots, skipped, nil
}

func parseRow(fields []string) (Spot, bool) {
	if len(fields) < numColumns {
		return Spot{}, false
	}
	freq, err := strconv.ParseFloat(fields[colFreq], 64)
	if err != nil || freq <= 0 {
		return Spot{}, false
	}
	at, err := time.Parse("2006-01-02 15:04:05", fields[colDate])
	if err != nil {
		return Spot{}, false
	}
	snr, err := strconv.Atoi(strings.TrimSpace(fields[colSNR]))
	if err != nil {
		return Spot{}, false
	}
	speed := 0
	if s := strings.TrimSpace(fields[colSpeed]); s != "" {
		speed, _ = strconv.Atoi(s)
	}

	spot := Spot{
		Spotter:          qso.NormalizeCallsign(fields[colSpotter]),
		SpotterPrefix:    strings.ToUpper(fields[colSpotterPfx]),
		SpotterContinent: strings.ToUpper(fields[colSpotterCont]),
		Frequency:        freq,
		DX:               qso.NormalizeCallsign(fields[colDX]),
		DXPrefix:         strings.ToUpper(fields[colDXPfx]),
		DXContinent:      strings.ToUpper(fields[colDXCont]),
		Mode:             strings.ToUpper(strings.TrimSpace(fields[colMode])),
		SNR:              snr,
		Time:             at.UTC(),
		CWSpeed:          speed,
	}
	if spot.Spotter == "" || spot.DX == "" {
		return Spot{}, false
	}
	spot.Band, spot.BandID = qso.ClassifyFrequency(freq)
	return spot, true
}

// ComputeHours fills the contest-hour column against a contest start instant,
// mirroring the contest log's hour axis. Spots outside the window keep
// negative or >48 values.
func ComputeHours(spots []Spot, start time.Time) {
	for i := range spots {
		spots[i].Hour = calendar.HourOfContest(spots[i].Time, start)
	}
}

// FilterDX returns the spots where the heard station matches call.
func FilterDX(spots []Spot, call string) []Spot {
	normalized := qso.NormalizeCallsign(call)
	var out []Spot
	for _, s := range spots {
		if s.DX == normalized {
			out = append(out, s)
		}
	}
	return out
}
