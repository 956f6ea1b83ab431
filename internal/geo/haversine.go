// Package geo holds the great-circle distance used by route sequencing.
package geo

import (
	"math"

	"delivery-route-sequencer/internal/domain"
)

// EarthRadiusKm is the mean Earth radius used by DistanceKm.
const EarthRadiusKm = 6371.0

// DistanceKm returns the Haversine great-circle distance between a and b in kilometers.
//
// Inputs are not range-checked: out-of-range coordinates still produce a number.
func DistanceKm(a, b domain.GeoPoint) float64 {
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	hav := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push hav marginally outside [0, 1] for antipodal points.
	hav = math.Min(1, math.Max(0, hav))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(hav))
}

// PathKm sums DistanceKm over consecutive points.
func PathKm(points []domain.GeoPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += DistanceKm(points[i-1], points[i])
	}
	return total
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
