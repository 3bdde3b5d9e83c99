package matching

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"dropofhope/pkg/domain"
)

func TestDistanceKm(t *testing.T) {
	dhaka := domain.GeoPoint{Latitude: 23.8103, Longitude: 90.4125}
	chittagong := domain.GeoPoint{Latitude: 22.3569, Longitude: 91.7832}

	t.Run("identical points are exactly zero", func(t *testing.T) {
		assert.Zero(t, DistanceKm(dhaka, dhaka))
	})

	t.Run("is symmetric", func(t *testing.T) {
		assert.Equal(t, DistanceKm(dhaka, chittagong), DistanceKm(chittagong, dhaka))
	})

	t.Run("matches a known great-circle distance", func(t *testing.T) {
		// Dhaka to Chittagong is roughly 212 km as the crow flies.
		d := DistanceKm(dhaka, chittagong)
		assert.InDelta(t, 212, d, 5)
	})

	t.Run("short distances stay positive and small", func(t *testing.T) {
		near := domain.GeoPoint{Latitude: 23.8110, Longitude: 90.4130}
		d := DistanceKm(dhaka, near)
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 1.0)
	})

	t.Run("antimeridian crossing stays finite", func(t *testing.T) {
		east := domain.GeoPoint{Latitude: 0, Longitude: 179.9}
		west := domain.GeoPoint{Latitude: 0, Longitude: -179.9}
		d := DistanceKm(east, west)
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 100.0)
	})

	t.Run("antipodal points never yield NaN", func(t *testing.T) {
		// Exact and near-exact antipodes push the haversine term to (or
		// fractionally past) 1.
		halfCircumference := math.Pi * 6371.0
		points := [][2]domain.GeoPoint{
			{{Latitude: 0, Longitude: 0}, {Latitude: 0, Longitude: 180}},
			{{Latitude: 23.8103, Longitude: 90.4125}, {Latitude: -23.8103, Longitude: -89.5875}},
			{{Latitude: 45, Longitude: 30}, {Latitude: -45, Longitude: -150.0000001}},
		}
		for _, p := range points {
			d := DistanceKm(p[0], p[1])
			assert.False(t, math.IsNaN(d))
			assert.InDelta(t, halfCircumference, d, 1.0)
		}
	})
}
