package cty

import (
	"bytes"
	"fmt"
	"testing"
)

func plistFixture(t *testing.T) *Database {
	t.Helper()
	entry := func(key, country, continent string, cqz, ituz, adif int, lat, lon float64) string {
		return fmt.Sprintf(`<key>%s</key><dict>
<key>Country</key><string>%s</string>
<key>Prefix</key><string>%s</string>
<key>ADIF</key><integer>%d</integer>
<key>CQZone</key><integer>%d</integer>
<key>ITUZone</key><integer>%d</integer>
<key>Continent</key><string>%s</string>
<key>Latitude</key><real>%g</real>
<key>Longitude</key><real>%g</real>
<key>GMTOffset</key><real>0</real>
<key>ExactCallsign</key><false/>
</dict>`, key, country, key, adif, cqz, ituz, continent, lat, lon)
	}
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0"><dict>` +
		entry("EA6", "Balearic Islands", "EU", 14, 37, 21, 39.6, 2.95) +
		entry("EA", "Spain", "EU", 14, 37, 281, 40.37, -4.88) +
		entry("W", "United States", "NA", 5, 8, 291, 43.0, -87.9) +
		entry("K", "United States", "NA", 5, 8, 291, 43.0, -87.9) +
		`</dict></plist>`

	db, err := LoadFromReader(bytes.NewReader([]byte(doc)))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	return db
}

func TestLookupLongestPrefix(t *testing.T) {
	db := plistFixture(t)
	info, ok := db.Lookup("EF6T")
	if ok {
		t.Fatalf("EF6T should not resolve in the fixture, got %v", info)
	}
	info, ok = db.Lookup("EA6VQ")
	if !ok {
		t.Fatalf("EA6VQ did not resolve")
	}
	if info.Country != "Balearic Islands" || info.Continent != "EU" {
		t.Fatalf("EA6VQ resolved to %q/%q", info.Country, info.Continent)
	}
	// EA3 has no EA3 entry; it must fall back to the shorter EA prefix.
	info, ok = db.Lookup("EA3M")
	if !ok || info.Country != "Spain" {
		t.Fatalf("EA3M lookup = %v, %v", info, ok)
	}
}

func TestLookupStripsQualifier(t *testing.T) {
	db := plistFixture(t)
	info, ok := db.Lookup("W1AW/QRP")
	if !ok || info.Continent != "NA" {
		t.Fatalf("W1AW/QRP lookup = %v, %v", info, ok)
	}
}

func TestLookupCachesMisses(t *testing.T) {
	db := plistFixture(t)
	if _, ok := db.Lookup("ZZ9ZZZ"); ok {
		t.Fatalf("ZZ9ZZZ should not resolve")
	}
	if _, ok := db.Lookup("ZZ9ZZZ"); ok {
		t.Fatalf("ZZ9ZZZ should not resolve on second try")
	}
	m := db.LookupMetrics()
	if m.TotalLookups != 2 || m.CacheHits != 1 {
		t.Fatalf("metrics = %+v, want 2 lookups with 1 cache hit", m)
	}
}

func TestLoadFromReaderRejectsGarbage(t *testing.T) {
	if _, err := LoadFromReader(bytes.NewReader([]byte("not a plist"))); err == nil {
		t.Fatalf("expected decode error")
	}
}
