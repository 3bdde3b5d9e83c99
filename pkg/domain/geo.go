package domain

// GeoPoint is a latitude/longitude pair. Both coordinates are required
// together; a record carrying only one of the two has no usable position and
// is excluded from proximity matching.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// NewGeoPoint assembles a GeoPoint from optional coordinate columns. The
// second return is false when either coordinate is absent.
func NewGeoPoint(lat, lon *float64) (GeoPoint, bool) {
	if lat == nil || lon == nil {
		return GeoPoint{}, false
	}
	return GeoPoint{Latitude: *lat, Longitude: *lon}, true
}
