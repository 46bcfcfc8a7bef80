package contest

import (
	"log"
	"time"

	"contestlog/calendar"
	"contestlog/cty"
	"contestlog/qso"
)

// GeoResolver resolves a callsign to its DXCC metadata. *cty.Database is the
// production implementation; the geocache package provides a persistent
// memoizing wrapper and tests inject fakes.
type GeoResolver interface {
	Lookup(call string) (*cty.Info, bool)
}

// Enrich adds geo, band, contest-hour and (for prefix-scored contests) WPX
// prefix fields to every raw record. Rows whose callsign cannot be resolved
// are dropped and counted rather than aborting the scope; an unresolvable own
// callsign is fatal because every derived field depends on the operator's
// location.
func Enrich(records []qso.Record, start time.Time, v Variant, res GeoResolver) ([]qso.Record, int, error) {
	if len(records) == 0 {
		return nil, 0, nil
	}

	myCall := records[0].MyCall
	myInfo, ok := res.Lookup(myCall)
	if !ok {
		return nil, 0, &OwnCallsignError{Callsign: myCall}
	}
	myLocator, ok := cty.LocatorFromLatLon(myInfo.Latitude, myInfo.Longitude)
	if !ok {
		return nil, 0, &OwnCallsignError{Callsign: myCall}
	}

	enriched := make([]qso.Record, 0, len(records))
	dropped := 0
	for _, rec := range records {
		info, ok := res.Lookup(rec.Call)
		if !ok {
			dropped++
			continue
		}
		rec.Country = info.Country
		rec.Continent = info.Continent
		rec.CQZone = info.CQZone
		rec.ITUZone = info.ITUZone
		rec.ADIF = info.ADIF
		rec.Latitude = info.Latitude
		rec.Longitude = info.Longitude
		rec.MyCountry = myInfo.Country
		rec.MyContinent = myInfo.Continent

		if locator, ok := cty.LocatorFromLatLon(info.Latitude, info.Longitude); ok {
			rec.Locator = locator
			if path, err := cty.LocatorPath(myLocator, locator); err == nil {
				rec.Distance = path.DistanceKm
				rec.DistanceLP = path.DistanceKmLP
				rec.Heading = path.HeadingDeg
				rec.HeadingLP = path.HeadingDegLP
			}
			if sun, err := cty.SunTimesAtLocator(locator, rec.Datetime); err == nil {
				rec.Sunrise = sun.Sunrise
				rec.Sunset = sun.Sunset
			}
		}

		rec.Band, rec.BandID = qso.ClassifyFrequency(rec.Frequency)
		rec.Hour = calendar.HourOfContest(rec.Datetime, start)
		if v.UsesPrefix {
			rec.Prefix = qso.WPXPrefix(rec.Call)
		}
		enriched = append(enriched, rec)
	}
	if dropped > 0 {
		log.Printf("contest: dropped %d rows with unresolvable callsigns", dropped)
	}
	return enriched, dropped, nil
}
