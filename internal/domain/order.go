package domain

import (
	"fmt"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
	OrderFailed    OrderStatus = "failed"
)

// ParseOrderStatus validates a raw status value.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderPending, OrderDelivered, OrderFailed:
		return st, nil
	default:
		return "", fmt.Errorf("parse order status %q: %w", s, ErrInvalidStatus)
	}
}

// Represents a single delivery order captured from a scanned QR code.
// Location stays nil until the address has been resolved to coordinates.
type Order struct {
	ID          string
	ClientName  string
	Phone       string
	Address     string
	District    string
	Products    []string
	Status      OrderStatus
	Location    *GeoPoint
	ScannedAt   time.Time
	DeliveredAt *time.Time
}

// Stop projects the order onto a routable stop.
func (o *Order) Stop() Stop {
	var loc *GeoPoint
	if o.Location != nil {
		p := *o.Location
		loc = &p
	}

	return Stop{
		ID:         o.ID,
		ClientName: o.ClientName,
		Address:    o.Address,
		District:   o.District,
		Location:   loc,
	}
}

// GeocodeKey is the normalized "address, district" string used for geocoding
// lookups and as the geocode cache key.
func (o *Order) GeocodeKey() string {
	key := o.Address
	if d := strings.TrimSpace(o.District); d != "" {
		key += ", " + d
	}
	return strings.Join(strings.Fields(key), " ")
}

// Aggregated delivery progress for one district.
type DistrictSummary struct {
	District  string
	Pending   int
	Delivered int
	Failed    int
}
