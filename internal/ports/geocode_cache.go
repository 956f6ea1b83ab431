package ports

import (
	"context"

	"delivery-route-sequencer/internal/domain"
)

// Persistent cache of address -> coordinate lookups.
// Keys are expected to be normalized by the caller.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}
