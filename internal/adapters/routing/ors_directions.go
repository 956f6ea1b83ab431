package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/obs"

	"googlemaps.github.io/maps"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// Route asks the ORS directions endpoint for a road path through the points in order.
// The encoded polyline geometry is decoded into coordinates.
func (o *ORSClient) Route(ctx context.Context, points []domain.GeoPoint) (_ domain.RoadPath, err error) {
	defer obs.Time(ctx, "ors.Route")(&err)

	if len(points) < 2 {
		return domain.RoadPath{Points: points}, nil
	}

	coords := make([][]float64, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return domain.RoadPath{}, fmt.Errorf("ors route: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.RoadPath{}, fmt.Errorf("ors route: directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return domain.RoadPath{}, fmt.Errorf("ors route: decode response: %w", err)
	}
	if len(dr.Routes) == 0 {
		return domain.RoadPath{}, errors.New("ors route: no route returned")
	}

	r := dr.Routes[0]
	decoded, err := maps.DecodePolyline(r.Geometry)
	if err != nil {
		return domain.RoadPath{}, fmt.Errorf("ors route: decode polyline: %w", err)
	}

	// ORS returns meters and seconds.
	return domain.RoadPath{
		Points:          fromLatLngs(decoded),
		DistanceKm:      r.Summary.Distance / 1000,
		DurationMinutes: r.Summary.Duration / 60,
	}, nil
}

func fromLatLngs(in []maps.LatLng) []domain.GeoPoint {
	out := make([]domain.GeoPoint, 0, len(in))
	for _, ll := range in {
		out = append(out, domain.GeoPoint{Latitude: ll.Lat, Longitude: ll.Lng})
	}
	return out
}
