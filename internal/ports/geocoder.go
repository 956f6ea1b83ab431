package ports

import (
	"context"
	"errors"

	"delivery-route-sequencer/internal/domain"
)

// ErrNoGeocodeResult is returned when a provider found no match for an address.
var ErrNoGeocodeResult = errors.New("no geocode result")

// Contract for resolving free-text addresses into coordinates.
type Geocoder interface {
	// Return the coordinate of the best match for the address.
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}
