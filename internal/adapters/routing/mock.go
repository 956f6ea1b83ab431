package routing

import (
	"context"
	"fmt"
	"sync"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/ports"
)

// MockGeocoder resolves addresses from a fixed table and counts calls.
type MockGeocoder struct {
	mu    sync.Mutex
	m     map[string]domain.GeoPoint
	errs  map[string]error
	calls int
}

func NewMockGeocoder(known map[string]domain.GeoPoint) *MockGeocoder {
	m := make(map[string]domain.GeoPoint, len(known))
	for k, v := range known {
		m[normalize(k)] = v
	}
	return &MockGeocoder{m: m, errs: map[string]error{}}
}

// FailOn makes lookups of address return err.
func (g *MockGeocoder) FailOn(address string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[normalize(address)] = err
}

func (g *MockGeocoder) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func (g *MockGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++

	key := normalize(address)
	if err, ok := g.errs[key]; ok {
		return domain.GeoPoint{}, err
	}
	p, ok := g.m[key]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("mock geocode %q: %w", key, ports.ErrNoGeocodeResult)
	}
	return p, nil
}

// MockRouter returns the input points as the road path, or a fixed error.
// When Block is set it waits for the context to end, simulating a hung service.
type MockRouter struct {
	Err   error
	Block bool
}

func (r *MockRouter) Route(ctx context.Context, points []domain.GeoPoint) (domain.RoadPath, error) {
	if r.Block {
		<-ctx.Done()
		return domain.RoadPath{}, ctx.Err()
	}
	if r.Err != nil {
		return domain.RoadPath{}, r.Err
	}

	out := make([]domain.GeoPoint, len(points))
	copy(out, points)
	return domain.RoadPath{Points: out}, nil
}
