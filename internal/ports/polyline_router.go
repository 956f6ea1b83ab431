package ports

import (
	"context"

	"delivery-route-sequencer/internal/domain"
)

// Contract for refining a visiting order into a road-network path.
type PolylineRouter interface {
	// Return a drivable path through the points in the given order.
	Route(ctx context.Context, points []domain.GeoPoint) (domain.RoadPath, error)
}
