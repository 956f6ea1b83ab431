package geo

import (
	"math"
	"testing"

	"delivery-route-sequencer/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	tests := []struct {
		name     string
		a, b     domain.GeoPoint
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        domain.GeoPoint{Latitude: -12.0464, Longitude: -77.0428},
			b:        domain.GeoPoint{Latitude: -12.0464, Longitude: -77.0428},
			expected: 0,
			delta:    0,
		},
		{
			name:     "one degree of latitude",
			a:        domain.GeoPoint{Latitude: 0, Longitude: 0},
			b:        domain.GeoPoint{Latitude: 1, Longitude: 0},
			expected: EarthRadiusKm * math.Pi / 180,
			delta:    1e-9,
		},
		{
			name:     "quarter of the equator",
			a:        domain.GeoPoint{Latitude: 0, Longitude: 0},
			b:        domain.GeoPoint{Latitude: 0, Longitude: 90},
			expected: EarthRadiusKm * math.Pi / 2,
			delta:    1e-6,
		},
		{
			name:     "antipodal points",
			a:        domain.GeoPoint{Latitude: 0, Longitude: 0},
			b:        domain.GeoPoint{Latitude: 0, Longitude: 180},
			expected: EarthRadiusKm * math.Pi,
			delta:    1e-6,
		},
		{
			name:     "Lima center to Miraflores",
			a:        domain.GeoPoint{Latitude: -12.0464, Longitude: -77.0428},
			b:        domain.GeoPoint{Latitude: -12.1211, Longitude: -77.0297},
			expected: 8.4,
			delta:    0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DistanceKm(tt.a, tt.b), tt.delta)
		})
	}
}

func TestDistanceKm_Reflexive(t *testing.T) {
	points := []domain.GeoPoint{
		{Latitude: 0, Longitude: 0},
		{Latitude: 89.9999, Longitude: 179.9999},
		{Latitude: -12.0464, Longitude: -77.0428},
		{Latitude: 45.123456789, Longitude: -120.987654321},
	}

	for _, p := range points {
		assert.Equal(t, 0.0, DistanceKm(p, p), "distance from %v to itself", p)
	}
}

func TestDistanceKm_Symmetric(t *testing.T) {
	points := []domain.GeoPoint{
		{Latitude: -12.05, Longitude: -77.03},
		{Latitude: -12.10, Longitude: -77.05},
		{Latitude: -12.02, Longitude: -77.01},
		{Latitude: 51.5074, Longitude: -0.1278},
		{Latitude: -33.8688, Longitude: 151.2093},
	}

	for _, a := range points {
		for _, b := range points {
			ab := DistanceKm(a, b)
			ba := DistanceKm(b, a)
			assert.InEpsilon(t, ab+1, ba+1, 1e-9, "%v <-> %v", a, b)
			assert.GreaterOrEqual(t, ab, 0.0)
		}
	}
}

func TestDistanceKm_NearCoincidentPoints(t *testing.T) {
	a := domain.GeoPoint{Latitude: -12.0464, Longitude: -77.0428}
	b := domain.GeoPoint{Latitude: -12.0464, Longitude: -77.04280001}

	d := DistanceKm(a, b)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 0.00001)
}

func TestDistanceKm_OutOfRangeStillNumeric(t *testing.T) {
	d := DistanceKm(domain.GeoPoint{Latitude: 120, Longitude: 400}, domain.GeoPoint{Latitude: 0, Longitude: 0})
	assert.False(t, math.IsNaN(d))
}

func TestPathKm(t *testing.T) {
	a := domain.GeoPoint{Latitude: -12.05, Longitude: -77.03}
	b := domain.GeoPoint{Latitude: -12.10, Longitude: -77.05}
	c := domain.GeoPoint{Latitude: -12.02, Longitude: -77.01}

	assert.Equal(t, 0.0, PathKm(nil))
	assert.Equal(t, 0.0, PathKm([]domain.GeoPoint{a}))
	assert.InDelta(t, DistanceKm(a, b)+DistanceKm(b, c), PathKm([]domain.GeoPoint{a, b, c}), 1e-12)
}
