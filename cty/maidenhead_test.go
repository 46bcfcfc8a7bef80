package cty

import (
	"math"
	"testing"
	"time"
)

func TestLocatorFromLatLon(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     string
	}{
		{40.37, -4.88, "IN70ni"},  // central Spain
		{43.0, -87.9, "EN63ba"},   // Milwaukee area
		{-33.9, 18.4, "JF96ec"},   // Cape Town area
	}
	for _, tc := range cases {
		got, ok := LocatorFromLatLon(tc.lat, tc.lon)
		if !ok {
			t.Fatalf("LocatorFromLatLon(%v, %v) failed", tc.lat, tc.lon)
		}
		if got != tc.want {
			t.Fatalf("LocatorFromLatLon(%v, %v) = %q, want %q", tc.lat, tc.lon, got, tc.want)
		}
	}
	if _, ok := LocatorFromLatLon(91, 0); ok {
		t.Fatalf("latitude out of range must fail")
	}
	if _, ok := LocatorFromLatLon(math.NaN(), 0); ok {
		t.Fatalf("NaN latitude must fail")
	}
}

func TestLatLonRoundTrip(t *testing.T) {
	for _, loc := range []string{"IN80ei", "EN62bx", "JN76to", "FN31pr"} {
		lat, lon, err := LatLonFromLocator(loc)
		if err != nil {
			t.Fatalf("LatLonFromLocator(%q): %v", loc, err)
		}
		back, ok := LocatorFromLatLon(lat, lon)
		if !ok || back != loc {
			t.Fatalf("round trip %q -> (%v, %v) -> %q", loc, lat, lon, back)
		}
	}
	if _, _, err := LatLonFromLocator("ZZ99"); err == nil {
		t.Fatalf("expected error for out-of-range field")
	}
	if _, _, err := LatLonFromLocator("IN8"); err == nil {
		t.Fatalf("expected error for short locator")
	}
}

func TestLocatorPath(t *testing.T) {
	// Madrid to Milwaukee: roughly 6700 km, heading a bit north of west.
	p, err := LocatorPath("IN80ei", "EN62bx")
	if err != nil {
		t.Fatalf("LocatorPath: %v", err)
	}
	if p.DistanceKm < 6500 || p.DistanceKm > 6900 {
		t.Fatalf("short path distance %v out of expected range", p.DistanceKm)
	}
	if math.Abs(p.DistanceKm+p.DistanceKmLP-earthCircumferenceKm) > 0.01 {
		t.Fatalf("short+long path must equal the circumference, got %v",
			p.DistanceKm+p.DistanceKmLP)
	}
	if p.HeadingDeg < 280 || p.HeadingDeg > 320 {
		t.Fatalf("heading %v out of expected range", p.HeadingDeg)
	}
	wantLP := math.Mod(p.HeadingDeg+180, 360)
	if math.Abs(p.HeadingDegLP-wantLP) > 1e-9 {
		t.Fatalf("long path heading %v, want %v", p.HeadingDegLP, wantLP)
	}
}

func TestSunTimes(t *testing.T) {
	// Madrid, late November: sunrise and sunset exist and sit in sane UTC hours.
	st, err := SunTimesAtLocator("IN80ei", time.Date(2023, 11, 25, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("SunTimesAtLocator: %v", err)
	}
	if !st.HasSunrise || !st.HasSunset {
		t.Fatalf("expected sunrise and sunset, got %+v", st)
	}
	if h := st.Sunrise.Hour(); h < 6 || h > 9 {
		t.Fatalf("sunrise hour %d out of range", h)
	}
	if h := st.Sunset.Hour(); h < 16 || h > 19 {
		t.Fatalf("sunset hour %d out of range", h)
	}
	if !st.Sunset.After(st.Sunrise) {
		t.Fatalf("sunset %v not after sunrise %v", st.Sunset, st.Sunrise)
	}

	// Above the polar circle in December the sun never rises.
	polar := sunTimes(80, 0, time.Date(2023, 12, 21, 0, 0, 0, 0, time.UTC))
	if polar.HasSunrise || polar.HasSunset {
		t.Fatalf("expected polar night, got %+v", polar)
	}
}
