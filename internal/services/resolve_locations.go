package services

import (
	"context"
	"errors"
	"fmt"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/obs"
	"delivery-route-sequencer/internal/ports"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const geocodeConcurrency = 5

// ResolveReport counts orders whose coordinates were looked up.
type ResolveReport struct {
	Resolved  int
	CacheHits int
	Failed    int
	// Updated lists the orders that received a coordinate during this call.
	Updated []*domain.Order
}

// ResolveLocations fills in missing order coordinates from the cache and the geocoder.
//
// A failed lookup leaves the order unresolved; only context cancellation is returned
// as an error. Fresh results are written back to the cache when one is given.
func ResolveLocations(
	ctx context.Context,
	orders []*domain.Order,
	geocoder ports.Geocoder,
	cache ports.GeocodeCache,
) (_ ResolveReport, err error) {
	defer obs.Time(ctx, "geocode.Resolve")(&err)

	var report ResolveReport

	byKey := make(map[string][]*domain.Order)
	keys := make([]string, 0, len(orders))
	for _, o := range orders {
		if o == nil || o.Location != nil {
			continue
		}
		k := o.GeocodeKey()
		if k == "" {
			report.Failed++
			continue
		}
		if _, ok := byKey[k]; !ok {
			keys = append(keys, k)
		}
		byKey[k] = append(byKey[k], o)
	}
	if len(keys) == 0 {
		return report, nil
	}

	assign := func(k string, p domain.GeoPoint) {
		for _, o := range byKey[k] {
			loc := p
			o.Location = &loc
			report.Resolved++
			report.Updated = append(report.Updated, o)
		}
	}

	misses := keys
	if cache != nil {
		hits, err := cache.GetMany(ctx, keys)
		if err != nil {
			log.Warn().Err(err).Int("keys", len(keys)).Msg("geocode cache lookup failed")
		}

		misses = make([]string, 0, len(keys))
		for _, k := range keys {
			if p, ok := hits[k]; ok && p.Valid() {
				assign(k, p)
				report.CacheHits += len(byKey[k])
				obs.GeocodeRequests.WithLabelValues("cache_hit").Inc()
				continue
			}
			misses = append(misses, k)
		}
	}

	if geocoder == nil {
		for _, k := range misses {
			report.Failed += len(byKey[k])
		}
		return report, nil
	}

	type result struct {
		point domain.GeoPoint
		err   error
	}
	results := make([]result, len(misses))

	var g errgroup.Group
	g.SetLimit(geocodeConcurrency)
	for i, k := range misses {
		g.Go(func() error {
			if ctx.Err() != nil {
				results[i].err = ctx.Err()
				return nil
			}
			p, err := geocoder.Geocode(ctx, k)
			if err == nil && !p.Valid() {
				err = fmt.Errorf("geocode %q: coordinate out of range", k)
			}
			results[i] = result{point: p, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("resolve locations: %w", err)
	}

	fresh := make(map[string]domain.GeoPoint, len(misses))
	for i, k := range misses {
		r := results[i]
		if r.err != nil {
			report.Failed += len(byKey[k])
			obs.GeocodeRequests.WithLabelValues("failed").Inc()
			ev := log.Warn()
			if errors.Is(r.err, ports.ErrNoGeocodeResult) {
				ev = log.Info()
			}
			ev.Err(r.err).Str("req_id", obs.RequestID(ctx)).Str("address", k).Msg("address not resolved")
			continue
		}
		obs.GeocodeRequests.WithLabelValues("resolved").Inc()
		fresh[k] = r.point
		assign(k, r.point)
	}

	if cache != nil && len(fresh) > 0 {
		if err := cache.PutMany(ctx, fresh); err != nil {
			log.Warn().Err(err).Int("keys", len(fresh)).Msg("geocode cache write failed")
		}
	}

	return report, nil
}
