package dto

import (
	"delivery-route-sequencer/internal/services"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// NewRouteOverlay renders a plan as a GeoJSON FeatureCollection for map display:
// one LineString for the path and one Point per stop in visiting order.
func NewRouteOverlay(plan *services.RoutePlan) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	line := make(orb.LineString, 0, len(plan.Path))
	for _, p := range plan.Path {
		line = append(line, p.Point())
	}

	if len(line) > 1 {
		path := geojson.NewFeature(line)
		path.Properties["kind"] = "path"
		path.Properties["refined"] = plan.Refined
		path.Properties["distance_km"] = plan.Metrics.TotalDistanceKm
		path.Properties["estimated_minutes"] = plan.Metrics.EstimatedMinutes
		fc.Append(path)
	}

	var bound orb.Bound
	first := true
	extend := func(pt orb.Point) {
		if first {
			bound = pt.Bound()
			first = false
			return
		}
		bound = bound.Extend(pt)
	}
	for _, pt := range line {
		extend(pt)
	}

	for i, s := range plan.Sequence.Stops {
		if s.Location == nil {
			continue
		}
		pt := s.Location.Point()
		extend(pt)

		f := geojson.NewFeature(pt)
		f.Properties["kind"] = "stop"
		f.Properties["seq"] = i
		f.Properties["id"] = s.ID
		f.Properties["client"] = s.ClientName
		f.Properties["district"] = s.District
		f.Properties["origin"] = s.Origin
		fc.Append(f)
	}

	if !first {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}
