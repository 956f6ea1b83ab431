package routing

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultORSBaseURL = "https://api.openrouteservice.org"

// ORSClient implements Geocoder and PolylineRouter using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Client-side rate limiting for the free-tier quotas
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type ORSClient struct {
	session *http.Client
	limiter *rate.Limiter
	apiKey  string
	baseURL string
	profile string
	country string
}

type ORSOption func(*ORSClient)

// WithORSBaseURL points the client at another ORS deployment (or a test server).
func WithORSBaseURL(u string) ORSOption {
	return func(o *ORSClient) { o.baseURL = strings.TrimRight(u, "/") }
}

// WithORSProfile sets the directions profile, e.g. "driving-car" or "cycling-regular".
func WithORSProfile(p string) ORSOption {
	return func(o *ORSClient) { o.profile = p }
}

// WithORSCountry restricts geocoding to an ISO country code.
func WithORSCountry(c string) ORSOption {
	return func(o *ORSClient) { o.country = c }
}

// WithORSRateLimit caps outgoing requests per second.
func WithORSRateLimit(perSec float64) ORSOption {
	return func(o *ORSClient) {
		if perSec > 0 {
			o.limiter = rate.NewLimiter(rate.Limit(perSec), 1)
		}
	}
}

func NewORSClient(apiKey string, opts ...ORSOption) (*ORSClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	client := &ORSClient{
		session: &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(5), 1),
		apiKey:  apiKey,
		baseURL: defaultORSBaseURL,
		profile: "driving-car",
	}
	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// normalize ensures consistent queries by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
