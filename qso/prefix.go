package qso

import (
	"regexp"
	"strings"
)

// trailing-digit rule: a prefix runs up to and including the last digit.
var prefixDigitRE = regexp.MustCompile(`^(.*\d)`)

// WPXPrefix extracts the CQ WPX multiplier prefix from a callsign.
//
// The heuristic matches the historical analysis tool and is deliberately kept
// bug-for-bug compatible, including its ambiguity for exotic multi-slash
// calls: operating qualifiers /QRP, /P, /MM and /M are removed first (in that
// order, anywhere in the string), the call is split on "/", the shorter of the
// first two segments wins, and the prefix is the leading run of characters up
// to the last digit. Calls with no digit keep the whole segment (e.g. "F" from
// F/EA3M).
func WPXPrefix(call string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(call))
	for _, qualifier := range []string{"/QRP", "/P", "/MM", "/M"} {
		cleaned = strings.ReplaceAll(cleaned, qualifier, "")
	}

	chunks := strings.Split(cleaned, "/")
	candidate := chunks[0]
	if len(chunks) >= 2 && len(chunks[0]) >= len(chunks[1]) {
		// Ties go to the second segment, matching the historical tool.
		candidate = chunks[1]
	}

	if m := prefixDigitRE.FindStringSubmatch(candidate); m != nil {
		return m[1]
	}
	return candidate
}
