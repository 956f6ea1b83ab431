package routing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/obs"
	"delivery-route-sequencer/internal/ports"

	"googlemaps.github.io/maps"
)

// GoogleMapsClient implements Geocoder and PolylineRouter with the Google Maps web services.
type GoogleMapsClient struct {
	client *maps.Client
	region string
}

func NewGoogleMapsClient(apiKey, region string, opts ...maps.ClientOption) (*GoogleMapsClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google maps api key is empty")
	}

	c, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("google maps: new client: %w", err)
	}

	return &GoogleMapsClient{
		client: c,
		region: strings.ToLower(region),
	}, nil
}

// Geocode resolves an address with the Geocoding API, biased to the configured region.
func (g *GoogleMapsClient) Geocode(ctx context.Context, address string) (_ domain.GeoPoint, err error) {
	defer obs.Time(ctx, "google.Geocode")(&err)

	norm := normalize(address)
	if norm == "" {
		return domain.GeoPoint{}, errors.New("google geocode: address must be non-empty")
	}

	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address: norm,
		Region:  g.region,
	})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return domain.GeoPoint{}, fmt.Errorf("google geocode %q: %w", norm, ports.ErrNoGeocodeResult)
		}
		return domain.GeoPoint{}, fmt.Errorf("google geocode %q: %w", norm, err)
	}
	if len(results) == 0 {
		return domain.GeoPoint{}, fmt.Errorf("google geocode %q: %w", norm, ports.ErrNoGeocodeResult)
	}

	loc := results[0].Geometry.Location
	return domain.GeoPoint{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// Route requests driving directions through the points in the given order.
// Intermediate points are passed as fixed (non-optimized) waypoints.
func (g *GoogleMapsClient) Route(ctx context.Context, points []domain.GeoPoint) (_ domain.RoadPath, err error) {
	defer obs.Time(ctx, "google.Route")(&err)

	if len(points) < 2 {
		return domain.RoadPath{Points: points}, nil
	}

	waypoints := make([]string, 0, len(points)-2)
	for _, p := range points[1 : len(points)-1] {
		waypoints = append(waypoints, latLngString(p))
	}

	routes, _, err := g.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLngString(points[0]),
		Destination: latLngString(points[len(points)-1]),
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
		Region:      g.region,
	})
	if err != nil {
		return domain.RoadPath{}, fmt.Errorf("google route: directions: %w", err)
	}
	if len(routes) == 0 {
		return domain.RoadPath{}, errors.New("google route: no route returned")
	}

	r := routes[0]
	decoded, err := r.OverviewPolyline.Decode()
	if err != nil {
		return domain.RoadPath{}, fmt.Errorf("google route: decode polyline: %w", err)
	}

	meters := 0
	var duration time.Duration
	for _, leg := range r.Legs {
		meters += leg.Distance.Meters
		duration += leg.Duration
	}

	return domain.RoadPath{
		Points:          fromLatLngs(decoded),
		DistanceKm:      float64(meters) / 1000,
		DurationMinutes: duration.Minutes(),
	}, nil
}

func latLngString(p domain.GeoPoint) string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}
