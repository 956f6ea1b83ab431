package services

import "delivery-route-sequencer/internal/domain"

// StopSelection is the result of filtering orders at the engine boundary.
type StopSelection struct {
	Stops    []domain.Stop
	Excluded []*domain.Order
}

// PrepareStops turns pending orders into routable stops.
//
// Orders lacking a valid coordinate are excluded and reported so the caller can
// tell the driver how many deliveries were left out. Orders that are no longer
// pending are dropped silently.
func PrepareStops(orders []*domain.Order) StopSelection {
	sel := StopSelection{
		Stops:    make([]domain.Stop, 0, len(orders)),
		Excluded: []*domain.Order{},
	}

	for _, o := range orders {
		if o == nil || o.Status != domain.OrderPending {
			continue
		}
		if o.Location == nil || !o.Location.Valid() {
			sel.Excluded = append(sel.Excluded, o)
			continue
		}
		sel.Stops = append(sel.Stops, o.Stop())
	}

	return sel
}
