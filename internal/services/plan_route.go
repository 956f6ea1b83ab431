package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/obs"
	"delivery-route-sequencer/internal/ports"

	"github.com/rs/zerolog/log"
)

const DefaultRefineTimeout = 8 * time.Second

// Notices shown to the driver next to a plan. None of them block delivery.
const (
	NoticeRefineUnavailable = "road routing unavailable; showing straight-line path"
	NoticeGeocodeFailed     = "some addresses could not be located and were left out"
	NoticeOrdersMissing     = "some requested orders were not found or are no longer pending"
)

// RoutePlanner ties order storage, geocoding and road routing around the
// sequencing engine. Geocoder, Cache and Router are optional.
type RoutePlanner struct {
	Repo          ports.OrderRepository
	Geocoder      ports.Geocoder
	Cache         ports.GeocodeCache
	Router        ports.PolylineRouter
	Policy        domain.MetricsPolicy
	RefineTimeout time.Duration
}

type PlanRouteRequest struct {
	Origin   domain.GeoPoint
	OrderIDs []string
	District string
	Refine   bool
}

// RoutePlan is what the driver sees: the visiting order, its metrics and the
// path to draw. Path is the straight-line polyline unless Refined is set.
type RoutePlan struct {
	Sequence       domain.RouteSequence
	Metrics        domain.RouteMetrics
	Path           []domain.GeoPoint
	Refined        bool
	RoadDistanceKm float64
	RoadMinutes    float64
	Notices        []string
	Excluded       []string
}

// Plan sequences the pending orders selected by req starting from req.Origin.
func (p *RoutePlanner) Plan(ctx context.Context, req PlanRouteRequest) (_ *RoutePlan, err error) {
	defer obs.Time(ctx, "routes.Plan")(&err)

	start := time.Now()
	defer func() {
		obs.RoutePlanDuration.Observe(time.Since(start).Seconds())
		switch {
		case err == nil:
			obs.RoutePlans.WithLabelValues("ok").Inc()
		case errors.Is(err, domain.ErrInvalidOrigin), errors.Is(err, domain.ErrMissingCoordinate):
			obs.RoutePlans.WithLabelValues("invalid").Inc()
		default:
			obs.RoutePlans.WithLabelValues("error").Inc()
		}
	}()

	if !req.Origin.Valid() {
		return nil, fmt.Errorf("plan route: %v: %w", req.Origin, domain.ErrInvalidOrigin)
	}
	if p.Repo == nil {
		return nil, errors.New("plan route: order repository is nil")
	}

	policy := p.Policy
	if policy == (domain.MetricsPolicy{}) {
		policy = domain.DefaultMetricsPolicy()
	}

	orders, err := p.Repo.ListOrders(ctx, ports.OrderFilter{
		IDs:      req.OrderIDs,
		District: strings.TrimSpace(req.District),
		Status:   domain.OrderPending,
	})
	if err != nil {
		return nil, fmt.Errorf("plan route: list orders: %w", err)
	}

	plan := &RoutePlan{Notices: []string{}, Excluded: []string{}}
	if len(req.OrderIDs) > 0 && len(orders) < len(uniqueStrings(req.OrderIDs)) {
		plan.Notices = append(plan.Notices, NoticeOrdersMissing)
	}

	if p.Geocoder != nil || p.Cache != nil {
		report, err := ResolveLocations(ctx, orders, p.Geocoder, p.Cache)
		if err != nil {
			return nil, fmt.Errorf("plan route: %w", err)
		}
		for _, o := range report.Updated {
			if err := p.Repo.UpdateLocation(ctx, o.ID, *o.Location); err != nil {
				log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Str("order_id", o.ID).Msg("persist resolved location failed")
			}
		}
		if report.Failed > 0 {
			plan.Notices = append(plan.Notices, NoticeGeocodeFailed)
		}
	}

	res, err := BuildRoute(req.Origin, orders, policy)
	if err != nil {
		return nil, fmt.Errorf("plan route: %w", err)
	}

	plan.Sequence = res.Sequence
	plan.Metrics = res.Metrics
	plan.Path = res.Sequence.Points()
	for _, o := range res.Excluded {
		plan.Excluded = append(plan.Excluded, o.ID)
	}

	obs.RouteStops.Observe(float64(res.Metrics.StopCount))
	obs.RouteStopsExcluded.Add(float64(res.Metrics.ExcludedCount))

	if req.Refine {
		p.refine(ctx, plan)
	}

	return plan, nil
}

// refine swaps the straight-line path for a road path. Failures and timeouts
// only add a notice.
func (p *RoutePlanner) refine(ctx context.Context, plan *RoutePlan) {
	if plan.Metrics.StopCount == 0 {
		obs.RouteRefinements.WithLabelValues("skipped").Inc()
		return
	}
	if p.Router == nil {
		obs.RouteRefinements.WithLabelValues("skipped").Inc()
		plan.Notices = append(plan.Notices, NoticeRefineUnavailable)
		return
	}

	timeout := p.RefineTimeout
	if timeout <= 0 {
		timeout = DefaultRefineTimeout
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	road, err := p.Router.Route(rctx, plan.Sequence.Points())
	if err != nil || len(road.Points) == 0 {
		if err == nil {
			err = errors.New("empty road path")
		}
		obs.RouteRefinements.WithLabelValues("fallback").Inc()
		log.Warn().Err(err).Str("req_id", obs.RequestID(ctx)).Msg("road routing failed, using straight-line path")
		plan.Notices = append(plan.Notices, NoticeRefineUnavailable)
		return
	}

	obs.RouteRefinements.WithLabelValues("refined").Inc()
	plan.Path = road.Points
	plan.RoadDistanceKm = road.DistanceKm
	plan.RoadMinutes = road.DurationMinutes
	plan.Refined = true
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
