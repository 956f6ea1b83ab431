package obs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RoutePlans counts route planning requests by outcome (ok, invalid, error).
	RoutePlans = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_plans_total",
		Help: "Total number of route planning requests by outcome",
	}, []string{"outcome"})

	// RouteStopsExcluded counts orders left out of a route for lacking coordinates.
	RouteStopsExcluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "route_stops_excluded_total",
		Help: "Total number of orders excluded from routes for lacking coordinates",
	})

	// RouteStops tracks the number of delivery stops per planned route.
	RouteStops = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_stops_count",
		Help:    "Number of delivery stops per planned route",
		Buckets: []float64{0, 1, 5, 10, 20, 50, 100},
	})

	// RouteRefinements counts road-routing refinement attempts (refined, fallback, skipped).
	RouteRefinements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "route_refinements_total",
		Help: "Total number of road-routing refinement attempts by result",
	}, []string{"result"})

	// RoutePlanDuration tracks end-to-end planning time.
	RoutePlanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "route_plan_duration_seconds",
		Help:    "Time taken to plan a route including collaborator calls",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
	})

	// GeocodeRequests counts address resolutions by result (cache_hit, resolved, failed).
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_requests_total",
		Help: "Total number of address resolutions by result",
	}, []string{"result"})
)
