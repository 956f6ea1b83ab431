package routing

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Reference polyline from the Google encoding documentation.
const samplePolyline = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

func newTestORS(t *testing.T, h http.HandlerFunc) *ORSClient {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewORSClient("test-key", WithORSBaseURL(srv.URL), WithORSCountry("PE"), WithORSRateLimit(1000))
	require.NoError(t, err)
	return c
}

func TestNewORSClientRequiresKey(t *testing.T) {
	_, err := NewORSClient("  ")
	assert.Error(t, err)
}

func TestORSGeocode(t *testing.T) {
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geocode/search", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "Av. Arequipa 1234, Lince", r.URL.Query().Get("text"))
		assert.Equal(t, "PE", r.URL.Query().Get("boundary.country"))

		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-77.0365,-12.0853]}}]}`))
	})

	p, err := c.Geocode(context.Background(), "  Av. Arequipa   1234,  Lince ")
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Latitude: -12.0853, Longitude: -77.0365}, p)
}

func TestORSGeocodeNoResult(t *testing.T) {
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	})

	_, err := c.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, ports.ErrNoGeocodeResult)
}

func TestORSRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"features":[{"geometry":{"coordinates":[-77.0,-12.0]}}]}`))
	})

	_, err := c.Geocode(context.Background(), "retry me")
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestORSDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad key", http.StatusForbidden)
	})

	_, err := c.Geocode(context.Background(), "x")
	require.Error(t, err)

	var he *httpStatusError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, int32(1), calls.Load())
}

func TestORSRouteDecodesPolyline(t *testing.T) {
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/directions/driving-car", r.URL.Path)

		var req directionsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, [][]float64{{-120.2, 38.5}, {-126.453, 43.252}}, req.Coordinates)

		json.NewEncoder(w).Encode(map[string]any{
			"routes": []map[string]any{{
				"summary":  map[string]float64{"distance": 12500, "duration": 1800},
				"geometry": samplePolyline,
			}},
		})
	})

	path, err := c.Route(context.Background(), []domain.GeoPoint{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 43.252, Longitude: -126.453},
	})
	require.NoError(t, err)

	require.Len(t, path.Points, 3)
	assert.InDelta(t, 40.7, path.Points[1].Latitude, 1e-6)
	assert.InDelta(t, -120.95, path.Points[1].Longitude, 1e-6)
	assert.Equal(t, 12.5, path.DistanceKm)
	assert.Equal(t, 30.0, path.DurationMinutes)
}

func TestORSRouteRespectsContext(t *testing.T) {
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.Route(ctx, []domain.GeoPoint{{Latitude: 1, Longitude: 1}, {Latitude: 2, Longitude: 2}})
	assert.Error(t, err)
}

func TestORSRouteSinglePointIsNoop(t *testing.T) {
	c := newTestORS(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	path, err := c.Route(context.Background(), []domain.GeoPoint{{Latitude: 1, Longitude: 1}})
	require.NoError(t, err)
	assert.Len(t, path.Points, 1)
}
