// Package cabrillo parses contest log submissions in the Cabrillo plain-text
// format into raw QSO records. Parsing is deliberately tolerant: real
// submissions contain malformed lines and those are skipped and counted, not
// fatal.
package cabrillo

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"contestlog/qso"
)

// whitespaceRE collapses the column-aligned Cabrillo spacing to single spaces.
var whitespaceRE = regexp.MustCompile(`[ \t]+`)

// Log is one parsed Cabrillo submission.
type Log struct {
	Header  map[string]string // KEY: value lines, e.g. CALLSIGN, CATEGORY-POWER
	Records []qso.Record
	Skipped int // malformed QSO lines dropped during parsing
}

// Callsign returns the submitting station's callsign from the header.
func (l *Log) Callsign() string {
	return qso.NormalizeCallsign(l.Header["CALLSIGN"])
}

// Parse reads a Cabrillo submission. QSO lines follow the layout
//
//	QSO: freq mode date time sent-call sent-rst sent-exch rcvd-call rcvd-rst rcvd-exch
//
// which covers the CQ WW (zone), CQ WPX (serial), IARU (society) and ARRL DX
// (power/state) exchanges with a single string exchange field per side.
func Parse(r io.Reader) (*Log, error) {
	parsed := &Log{Header: make(map[string]string)}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "QSO:") {
			rec, ok := parseQSOLine(line)
			if !ok {
				parsed.Skipped++
				continue
			}
			parsed.Records = append(parsed.Records, rec)
			continue
		}
		if key, value, ok := strings.Cut(line, ":"); ok {
			parsed.Header[strings.ToUpper(strings.TrimSpace(key))] = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cabrillo: read line %d: %w", lineNo, err)
	}
	if parsed.Skipped > 0 {
		log.Printf("cabrillo: skipped %d malformed QSO lines", parsed.Skipped)
	}
	return parsed, nil
}

func parseQSOLine(line string) (qso.Record, bool) {
	fields := strings.Split(whitespaceRE.ReplaceAllString(line, " "), " ")
	// "QSO:" plus the ten standard columns; trailing transmitter IDs are ignored.
	if len(fields) < 11 {
		return qso.Record{}, false
	}
	freq, err := strconv.ParseFloat(fields[1], 64)
	if err != nil || freq < 0 {
		return qso.Record{}, false
	}
	dt, err := parseTimestamp(fields[3], fields[4])
	if err != nil {
		return qso.Record{}, false
	}

	rec := qso.NewRecord(dt, freq, fields[2], fields[5], fields[8])
	rec.RSTSent = fields[6]
	rec.MyExchange = strings.ToUpper(fields[7])
	rec.RSTRcvd = fields[9]
	rec.Exchange = strings.ToUpper(fields[10])
	if rec.Call == "" || rec.MyCall == "" {
		return qso.Record{}, false
	}
	return rec, true
}

func parseTimestamp(date, hhmm string) (time.Time, error) {
	if len(hhmm) != 4 {
		return time.Time{}, fmt.Errorf("cabrillo: bad time %q", hhmm)
	}
	return time.Parse("2006-01-02 1504", date+" "+hhmm)
}
