package matching

import (
	"math"

	"dropofhope/pkg/domain"
)

// earthRadiusKm is the mean Earth radius of the spherical approximation.
const earthRadiusKm = 6371.0

// DistanceKm computes the great-circle distance between two points using the
// haversine formula. Symmetric, and exactly zero for equal points. Callers
// must filter out incomplete positions before calling.
func DistanceKm(a, b domain.GeoPoint) float64 {
	if a == b {
		return 0
	}
	latA := radians(a.Latitude)
	latB := radians(b.Latitude)
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Float error can push h past 1 for near-antipodal points, which would
	// make Sqrt(1-h) NaN.
	if h > 1 {
		h = 1
	}
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
