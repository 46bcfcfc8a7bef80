package cty

import (
	"math"
	"time"
)

// SunTimes holds the solar events at a location for one UTC date. Polar day
// and night leave the corresponding flag false with a zero timestamp.
type SunTimes struct {
	Sunrise    time.Time
	Sunset     time.Time
	HasSunrise bool
	HasSunset  bool
}

// SunTimesAtLocator computes sunrise and sunset (UTC) at a Maidenhead locator
// for the date of the given instant, using the NOAA solar position
// approximation. Accuracy is a couple of minutes, which is plenty for
// greyline propagation analysis.
func SunTimesAtLocator(locator string, at time.Time) (SunTimes, error) {
	lat, lon, err := LatLonFromLocator(locator)
	if err != nil {
		return SunTimes{}, err
	}
	return sunTimes(lat, lon, at.UTC()), nil
}

func sunTimes(lat, lon float64, at time.Time) SunTimes {
	year, month, day := at.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	dayOfYear := float64(midnight.YearDay())

	// Fractional year in radians, mid-day approximation.
	gamma := 2 * math.Pi / 365 * (dayOfYear - 1 + 0.5)

	// Equation of time (minutes) and solar declination (radians).
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))
	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	// Hour angle for official sunrise/sunset at zenith 90.833 degrees.
	latRad := lat * math.Pi / 180
	cosZenith := math.Cos(90.833 * math.Pi / 180)
	cosHA := (cosZenith - math.Sin(latRad)*math.Sin(decl)) /
		(math.Cos(latRad) * math.Cos(decl))

	var st SunTimes
	if cosHA < -1 || cosHA > 1 {
		// Sun never crosses the horizon on this date at this latitude.
		return st
	}
	haDeg := math.Acos(cosHA) * 180 / math.Pi

	sunriseMin := 720 - 4*(lon+haDeg) - eqTime
	sunsetMin := 720 - 4*(lon-haDeg) - eqTime
	st.Sunrise = midnight.Add(time.Duration(sunriseMin * float64(time.Minute)))
	st.Sunset = midnight.Add(time.Duration(sunsetMin * float64(time.Minute)))
	st.HasSunrise = true
	st.HasSunset = true
	return st
}
