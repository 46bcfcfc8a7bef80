package qso

import "testing"

func TestWPXPrefix(t *testing.T) {
	cases := []struct {
		call string
		want string
	}{
		{"EF6T", "EF6"},
		{"W1AW", "W1"},
		{"K5ZD", "K5"},
		{"9A1A", "9A1"},
		{"LY5W", "LY5"},
		{"EA8/K5ZD", "EA8"},   // shorter segment is the visited prefix
		{"W1AW/QRP", "W1"},    // operating qualifier stripped
		{"EA3M/P", "EA3"},
		{"VE3XYZ/MM", "VE3"},
		{"F/EA3M", "F"},       // no digit in the shorter segment
	}
	for _, tc := range cases {
		if got := WPXPrefix(tc.call); got != tc.want {
			t.Fatalf("WPXPrefix(%q) = %q, want %q", tc.call, got, tc.want)
		}
	}
}

func TestNormalizeCallsign(t *testing.T) {
	if got := NormalizeCallsign(" ef6t/ "); got != "EF6T" {
		t.Fatalf("NormalizeCallsign = %q, want EF6T", got)
	}
}
