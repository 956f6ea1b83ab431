package domain

import (
	"math"

	"github.com/paulmach/orb"
)

// Immutable geographic coordinates (latitude, longitude) in decimal degrees.
type GeoPoint struct {
	Latitude  float64
	Longitude float64
}

// Valid reports whether the point is finite and within the WGS84 ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) ||
		math.IsInf(p.Latitude, 0) || math.IsInf(p.Longitude, 0) {
		return false
	}

	return p.Latitude >= -90 && p.Latitude <= 90 &&
		p.Longitude >= -180 && p.Longitude <= 180
}

// Return the point as an orb.Point ([lon, lat]) for GeoJSON output.
func (p GeoPoint) Point() orb.Point { return orb.Point{p.Longitude, p.Latitude} }

// Return coordinates as [lon, lat] for external API compatibility.
func (p GeoPoint) CoordsToList() []float64 { return []float64{p.Longitude, p.Latitude} }
