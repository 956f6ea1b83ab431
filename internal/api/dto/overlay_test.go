package dto

import (
	"testing"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/services"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouteOverlay(t *testing.T) {
	origin := domain.GeoPoint{Latitude: -12.0464, Longitude: -77.0428}
	stop := domain.Stop{ID: "A", ClientName: "Ana", District: "Lince", Location: &domain.GeoPoint{Latitude: -12.05, Longitude: -77.03}}

	plan := &services.RoutePlan{
		Sequence: domain.RouteSequence{Stops: []domain.Stop{domain.NewOriginStop(origin), stop}},
		Path:     []domain.GeoPoint{origin, *stop.Location},
	}

	fc := NewRouteOverlay(plan)
	require.Len(t, fc.Features, 3)

	line, ok := fc.Features[0].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Equal(t, orb.Point{-77.0428, -12.0464}, line[0])

	assert.Equal(t, 0, fc.Features[1].Properties["seq"])
	assert.Equal(t, true, fc.Features[1].Properties["origin"])
	assert.Equal(t, "A", fc.Features[2].Properties["id"])
	assert.Equal(t, "Ana", fc.Features[2].Properties["client"])

	require.Len(t, fc.BBox, 4)
	assert.Equal(t, -77.0428, fc.BBox[0])
	assert.Equal(t, -12.05, fc.BBox[1])
}

func TestNewRouteOverlayOriginOnly(t *testing.T) {
	origin := domain.GeoPoint{Latitude: 1, Longitude: 2}
	plan := &services.RoutePlan{
		Sequence: domain.RouteSequence{Stops: []domain.Stop{domain.NewOriginStop(origin)}},
		Path:     []domain.GeoPoint{origin},
	}

	fc := NewRouteOverlay(plan)
	require.Len(t, fc.Features, 1)
	_, ok := fc.Features[0].Geometry.(orb.Point)
	assert.True(t, ok)
}
