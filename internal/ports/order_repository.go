package ports

import (
	"context"

	"delivery-route-sequencer/internal/domain"
)

// Criteria for listing orders; zero values match everything.
type OrderFilter struct {
	IDs      []string
	District string
	Status   domain.OrderStatus
}

// Port: a boundary for storing and retrieving Order entities.
type OrderRepository interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	SaveOrder(ctx context.Context, order *domain.Order) error
	UpdateLocation(ctx context.Context, id string, loc domain.GeoPoint) error
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	DistrictSummaries(ctx context.Context) ([]domain.DistrictSummary, error)
}
