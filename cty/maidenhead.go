package cty

import (
	"errors"
	"math"
	"strings"
)

// ErrBadLocator is returned for malformed Maidenhead locators.
var ErrBadLocator = errors.New("cty: invalid maidenhead locator")

// LocatorFromLatLon returns the 6-character Maidenhead locator for a lat/lon
// pair. It returns false when coordinates are out of range or non-finite.
func LocatorFromLatLon(lat, lon float64) (string, bool) {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return "", false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return "", false
	}
	if lat == 90 {
		lat = 89.999999
	}
	if lon == 180 {
		lon = 179.999999
	}
	adjLon := lon + 180
	adjLat := lat + 90
	fieldLon := int(adjLon / 20)
	fieldLat := int(adjLat / 10)
	if fieldLon < 0 || fieldLon >= 18 || fieldLat < 0 || fieldLat >= 18 {
		return "", false
	}
	remLon := adjLon - float64(fieldLon)*20
	remLat := adjLat - float64(fieldLat)*10
	squareLon := int(remLon / 2)
	squareLat := int(remLat / 1)
	if squareLon < 0 || squareLon >= 10 || squareLat < 0 || squareLat >= 10 {
		return "", false
	}
	subLon := int((remLon - float64(squareLon)*2) * 12)
	subLat := int((remLat - float64(squareLat)) * 24)
	if subLon < 0 {
		subLon = 0
	}
	if subLon > 23 {
		subLon = 23
	}
	if subLat < 0 {
		subLat = 0
	}
	if subLat > 23 {
		subLat = 23
	}
	return string([]byte{
		byte('A' + fieldLon),
		byte('A' + fieldLat),
		byte('0' + squareLon),
		byte('0' + squareLat),
		byte('a' + subLon),
		byte('a' + subLat),
	}), true
}

// LatLonFromLocator returns the center coordinates of a 4- or 6-character
// Maidenhead locator.
func LatLonFromLocator(locator string) (lat, lon float64, err error) {
	loc := strings.TrimSpace(locator)
	if len(loc) != 4 && len(loc) != 6 {
		return 0, 0, ErrBadLocator
	}
	loc = strings.ToUpper(loc[:4]) + strings.ToLower(loc[4:])

	fieldLon := int(loc[0] - 'A')
	fieldLat := int(loc[1] - 'A')
	squareLon := int(loc[2] - '0')
	squareLat := int(loc[3] - '0')
	if fieldLon < 0 || fieldLon >= 18 || fieldLat < 0 || fieldLat >= 18 {
		return 0, 0, ErrBadLocator
	}
	if squareLon < 0 || squareLon >= 10 || squareLat < 0 || squareLat >= 10 {
		return 0, 0, ErrBadLocator
	}

	lon = float64(fieldLon)*20 + float64(squareLon)*2 - 180
	lat = float64(fieldLat)*10 + float64(squareLat) - 90
	if len(loc) == 6 {
		subLon := int(loc[4] - 'a')
		subLat := int(loc[5] - 'a')
		if subLon < 0 || subLon >= 24 || subLat < 0 || subLat >= 24 {
			return 0, 0, ErrBadLocator
		}
		lon += float64(subLon)*2/24 + 1.0/24
		lat += float64(subLat)/24 + 0.5/24
	} else {
		lon += 1
		lat += 0.5
	}
	return lat, lon, nil
}
