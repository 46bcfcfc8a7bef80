package cty

import "math"

const (
	earthRadiusKm        = 6371.0
	earthCircumferenceKm = 2 * math.Pi * earthRadiusKm
)

// Path holds short- and long-path great-circle figures between two locators.
type Path struct {
	DistanceKm   float64
	DistanceKmLP float64
	HeadingDeg   float64
	HeadingDegLP float64
}

// LocatorPath computes great-circle distance and initial heading between two
// Maidenhead locators, for both the short and the long path. The long path is
// the complement of the short path around the great circle.
func LocatorPath(from, to string) (Path, error) {
	lat1, lon1, err := LatLonFromLocator(from)
	if err != nil {
		return Path{}, err
	}
	lat2, lon2, err := LatLonFromLocator(to)
	if err != nil {
		return Path{}, err
	}
	dist := haversineKm(lat1, lon1, lat2, lon2)
	heading := initialBearingDeg(lat1, lon1, lat2, lon2)
	return Path{
		DistanceKm:   dist,
		DistanceKmLP: earthCircumferenceKm - dist,
		HeadingDeg:   heading,
		HeadingDegLP: math.Mod(heading+180, 360),
	}, nil
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func initialBearingDeg(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dLambda := (lon2 - lon1) * math.Pi / 180

	y := math.Sin(dLambda) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLambda)
	bearing := math.Atan2(y, x) * 180 / math.Pi
	return math.Mod(bearing+360, 360)
}
