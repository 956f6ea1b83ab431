package services

import (
	"math"
	"testing"

	"delivery-route-sequencer/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingOrder(id string, loc *domain.GeoPoint) *domain.Order {
	return &domain.Order{ID: id, Address: "Calle " + id, District: "Lince", Status: domain.OrderPending, Location: loc}
}

func pt(lat, lon float64) *domain.GeoPoint {
	return &domain.GeoPoint{Latitude: lat, Longitude: lon}
}

func TestPrepareStops(t *testing.T) {
	delivered := pendingOrder("done", pt(-12.0, -77.0))
	delivered.Status = domain.OrderDelivered

	orders := []*domain.Order{
		pendingOrder("a", pt(-12.05, -77.03)),
		pendingOrder("no-geo", nil),
		nil,
		delivered,
		pendingOrder("bad", pt(math.NaN(), -77.0)),
		pendingOrder("b", pt(-12.10, -77.05)),
	}

	sel := PrepareStops(orders)

	require.Len(t, sel.Stops, 2)
	assert.Equal(t, "a", sel.Stops[0].ID)
	assert.Equal(t, "b", sel.Stops[1].ID)

	require.Len(t, sel.Excluded, 2)
	assert.Equal(t, "no-geo", sel.Excluded[0].ID)
	assert.Equal(t, "bad", sel.Excluded[1].ID)
}

func TestBuildRoute(t *testing.T) {
	orders := []*domain.Order{
		pendingOrder("A", pt(-12.05, -77.03)),
		pendingOrder("B", pt(-12.10, -77.05)),
		pendingOrder("X", nil),
		pendingOrder("C", pt(-12.02, -77.01)),
	}

	res, err := BuildRoute(limaCenter, orders, domain.DefaultMetricsPolicy())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.OriginStopID, "A", "C", "B"}, stopIDs(res.Sequence))
	assert.Equal(t, 3, res.Metrics.StopCount)
	assert.Equal(t, 1, res.Metrics.ExcludedCount)
	require.Len(t, res.Excluded, 1)
	assert.Equal(t, "X", res.Excluded[0].ID)
}

func TestBuildRouteNoResolvableOrders(t *testing.T) {
	res, err := BuildRoute(limaCenter, []*domain.Order{pendingOrder("X", nil)}, domain.DefaultMetricsPolicy())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.OriginStopID}, stopIDs(res.Sequence))
	assert.Zero(t, res.Metrics.TotalDistanceKm)
	assert.Zero(t, res.Metrics.EstimatedMinutes)
	assert.Equal(t, 1, res.Metrics.ExcludedCount)
}

func TestBuildRouteInvalidOrigin(t *testing.T) {
	for _, origin := range []domain.GeoPoint{
		{Latitude: 95, Longitude: 0},
		{Latitude: 0, Longitude: -181},
		{Latitude: math.NaN(), Longitude: 0},
	} {
		_, err := BuildRoute(origin, nil, domain.DefaultMetricsPolicy())
		assert.ErrorIs(t, err, domain.ErrInvalidOrigin)
	}
}
