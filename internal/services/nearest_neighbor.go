package services

import (
	"fmt"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/geo"
)

// Sequence orders delivery stops using a greedy nearest-neighbor heuristic.
//
// Starting at origin, the closest unvisited stop (Haversine distance) is always
// visited next. It does not attempt global route optimization. Ties are broken
// by input order so identical inputs always produce identical sequences.
//
// Every stop must carry a resolved Location; a stop without one fails the whole
// call with domain.ErrMissingCoordinate.
func Sequence(origin domain.GeoPoint, stops []domain.Stop) (domain.RouteSequence, error) {
	for i, s := range stops {
		if s.Location == nil {
			return domain.RouteSequence{}, fmt.Errorf(
				"sequence: stop #%d (id=%q): %w", i, s.ID, domain.ErrMissingCoordinate,
			)
		}
	}

	result := make([]domain.Stop, 0, len(stops)+1)
	result = append(result, domain.NewOriginStop(origin))

	visited := make([]bool, len(stops))
	current := origin

	for range stops {
		best := -1
		bestDist := 0.0

		// Strict comparison keeps the first-seen stop on equal distances.
		for i, s := range stops {
			if visited[i] {
				continue
			}
			d := geo.DistanceKm(current, *s.Location)
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		visited[best] = true
		next := stops[best]
		next.Origin = false
		result = append(result, next)
		current = *next.Location
	}

	return domain.RouteSequence{Stops: result}, nil
}
