package services

import (
	"fmt"

	"delivery-route-sequencer/internal/domain"
)

// RouteResult bundles a sequence with its metrics and the orders left out.
type RouteResult struct {
	Sequence domain.RouteSequence
	Metrics  domain.RouteMetrics
	Excluded []*domain.Order
}

// BuildRoute validates the origin, filters orders, sequences them and computes metrics.
func BuildRoute(origin domain.GeoPoint, orders []*domain.Order, policy domain.MetricsPolicy) (RouteResult, error) {
	if !origin.Valid() {
		return RouteResult{}, fmt.Errorf("build route: %v: %w", origin, domain.ErrInvalidOrigin)
	}

	sel := PrepareStops(orders)

	seq, err := Sequence(origin, sel.Stops)
	if err != nil {
		return RouteResult{}, fmt.Errorf("build route: %w", err)
	}

	metrics := ComputeMetrics(seq, policy)
	metrics.ExcludedCount = len(sel.Excluded)

	return RouteResult{
		Sequence: seq,
		Metrics:  metrics,
		Excluded: sel.Excluded,
	}, nil
}
