package services

import (
	"context"
	"errors"
	"sync"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/ports"
)

type memRepo struct {
	mu      sync.Mutex
	orders  []*domain.Order
	updated map[string]domain.GeoPoint
}

func newMemRepo(orders ...*domain.Order) *memRepo {
	return &memRepo{orders: orders, updated: map[string]domain.GeoPoint{}}
}

func (r *memRepo) ListOrders(_ context.Context, f ports.OrderFilter) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	match := func(o *domain.Order) bool {
		if f.District != "" && o.District != f.District {
			return false
		}
		return f.Status == "" || o.Status == f.Status
	}

	var out []*domain.Order
	if len(f.IDs) > 0 {
		for _, id := range f.IDs {
			for _, o := range r.orders {
				if o.ID == id && match(o) {
					c := *o
					out = append(out, &c)
				}
			}
		}
		return out, nil
	}
	for _, o := range r.orders {
		if match(o) {
			c := *o
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memRepo) GetOrder(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.orders {
		if o.ID == id {
			c := *o
			return &c, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memRepo) SaveOrder(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, o)
	return nil
}

func (r *memRepo) UpdateLocation(_ context.Context, id string, loc domain.GeoPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated[id] = loc
	return nil
}

func (r *memRepo) UpdateStatus(context.Context, string, domain.OrderStatus) error {
	return errors.New("not implemented")
}

func (r *memRepo) DistrictSummaries(context.Context) ([]domain.DistrictSummary, error) {
	return nil, errors.New("not implemented")
}

type mapCache struct {
	mu     sync.Mutex
	m      map[string]domain.GeoPoint
	getErr error
	putErr error
	puts   int
}

func newMapCache(seed map[string]domain.GeoPoint) *mapCache {
	m := map[string]domain.GeoPoint{}
	for k, v := range seed {
		m[k] = v
	}
	return &mapCache{m: m}
}

func (c *mapCache) GetMany(_ context.Context, keys []string) (map[string]domain.GeoPoint, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, c.getErr
	}
	out := map[string]domain.GeoPoint{}
	for _, k := range keys {
		if p, ok := c.m[k]; ok {
			out[k] = p
		}
	}
	return out, nil
}

func (c *mapCache) PutMany(_ context.Context, results map[string]domain.GeoPoint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	for k, v := range results {
		c.m[k] = v
	}
	return nil
}
