package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"delivery-route-sequencer/internal/adapters/repositories"
	"delivery-route-sequencer/internal/adapters/routing"
	"delivery-route-sequencer/internal/api/dto"
	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/db"
	"delivery-route-sequencer/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	repo    *repositories.SQLOrderRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn, dialect, err := db.Open("", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, repositories.InitSchema(conn, dialect))

	repo := repositories.NewSQLOrderRepository(conn, dialect)
	planner := &services.RoutePlanner{
		Repo:   repo,
		Router: &routing.MockRouter{},
		Policy: domain.DefaultMetricsPolicy(),
	}
	return &testServer{handler: NewRouter(repo, planner), repo: repo}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) scan(t *testing.T, name, addr string, lat, lng float64) dto.OrderResponse {
	t.Helper()

	payload := map[string]any{
		"NOMBRE": name, "CEL": "999", "DIR": addr, "DISTRITO": "Lince", "PROD": "pan",
		"LAT": lat, "LNG": lng,
	}
	b, err := json.Marshal(payload)
	require.NoError(t, err)

	rec := s.do(t, http.MethodPost, "/orders", string(b))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = s.do(t, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestScanAndListOrders(t *testing.T) {
	s := newTestServer(t)
	created := s.scan(t, "Ana", "Av. Arequipa 100", -12.05, -77.03)
	assert.Equal(t, "pending", created.Status)
	require.NotNil(t, created.Location)

	rec := s.do(t, http.MethodGet, "/orders?district=Lince&status=pending", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, created.ID, list.Orders[0].ID)

	rec = s.do(t, http.MethodGet, "/orders?status=lost", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScanRejectsInvalidPayload(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/orders", `{"NOMBRE":"Ana"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestUpdateStatusAndDistricts(t *testing.T) {
	s := newTestServer(t)
	o := s.scan(t, "Ana", "Av. Arequipa 100", -12.05, -77.03)
	s.scan(t, "Luis", "Av. Arequipa 200", -12.06, -77.03)

	rec := s.do(t, http.MethodPost, "/orders/"+o.ID+"/status", `{"status":"delivered"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated dto.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "delivered", updated.Status)
	assert.NotNil(t, updated.DeliveredAt)

	rec = s.do(t, http.MethodPost, "/orders/"+o.ID+"/status", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/orders/missing/status", `{"status":"failed"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/districts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"districts":[{"district":"Lince","pending":1,"delivered":1,"failed":0}]}`, rec.Body.String())
}

func TestLabel(t *testing.T) {
	s := newTestServer(t)
	o := s.scan(t, "Ana", "Av. Arequipa 100", -12.05, -77.03)

	rec := s.do(t, http.MethodGet, "/orders/"+o.ID+"/label?size=128", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec = s.do(t, http.MethodGet, "/orders/missing/label", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/orders/"+o.ID+"/label?size=5", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlanRoute(t *testing.T) {
	s := newTestServer(t)
	a := s.scan(t, "A", "Calle A", -12.05, -77.03)
	b := s.scan(t, "B", "Calle B", -12.10, -77.05)
	c := s.scan(t, "C", "Calle C", -12.02, -77.01)

	rec := s.do(t, http.MethodPost, "/routes", `{"origin":{"latitude":-12.0464,"longitude":-77.0428},"refine":true}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))

	ids := make([]string, 0, len(res.Sequence))
	for _, st := range res.Sequence {
		ids = append(ids, st.ID)
	}
	assert.Equal(t, []string{domain.OriginStopID, a.ID, c.ID, b.ID}, ids)
	assert.Equal(t, 3, res.Metrics.StopCount)
	assert.True(t, res.Refined)
	assert.Len(t, res.Path, 4)
	assert.Empty(t, res.Notices)
}

func TestPlanRouteGeoJSON(t *testing.T) {
	s := newTestServer(t)
	s.scan(t, "A", "Calle A", -12.05, -77.03)

	rec := s.do(t, http.MethodPost, "/routes", `{"origin":{"latitude":-12.0464,"longitude":-77.0428},"format":"geojson"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
			} `json:"geometry"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)
}

func TestPlanRouteFromNMEA(t *testing.T) {
	s := newTestServer(t)

	body := `{"origin":{"nmea":"$GPGGA,092750.000,5321.6802,N,00630.3372,W,1,8,1.03,61.7,M,55.2,M,,*76"}}`
	rec := s.do(t, http.MethodPost, "/routes", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestPlanRouteBadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing origin", `{}`},
		{"origin out of range", `{"origin":{"latitude":91,"longitude":0}}`},
		{"bad nmea", `{"origin":{"nmea":"$GPGGA,garbage"}}`},
		{"unknown field", `{"origin":{"latitude":0,"longitude":0},"trucks":3}`},
		{"bad format", `{"origin":{"latitude":0,"longitude":0},"format":"kml"}`},
		{"two objects", `{"origin":{"latitude":0,"longitude":0}}{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/routes", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	rec := s.do(t, http.MethodGet, "/routes", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestPlanRouteExcludedOrders(t *testing.T) {
	s := newTestServer(t)
	s.scan(t, "A", "Calle A", -12.05, -77.03)

	unresolved := &domain.Order{
		ID: "no-geo", ClientName: "X", Phone: "1", Address: "Nowhere", District: "Lince",
		Products: []string{"pan"}, Status: domain.OrderPending,
	}
	require.NoError(t, s.repo.SaveOrder(context.Background(), unresolved))

	rec := s.do(t, http.MethodPost, "/routes", `{"origin":{"latitude":-12.0464,"longitude":-77.0428}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"no-geo"}, res.Excluded)
	assert.Equal(t, 1, res.Metrics.ExcludedCount)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
