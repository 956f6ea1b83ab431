package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"delivery-route-sequencer/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config is the process configuration assembled from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	DBPath      string
	SeedPath    string

	RoutingProvider   string
	ORSAPIKey         string
	GoogleMapsAPIKey  string
	GeocodeCountry    string
	GeocodeRatePerSec float64

	GeocodeCache    string
	RedisAddr       string
	GeocodeCacheTTL time.Duration

	RefineTimeout time.Duration
	Policy        domain.MetricsPolicy

	LogLevel  string
	LogPretty bool
}

// LoadDotEnv reads a .env file when present; absence is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found (using environment variables)")
	}
}

// Load reads the full configuration from the environment.
func Load() (*Config, error) {
	LoadDotEnv()

	speed, err := Float("ROUTE_AVG_SPEED_KMH", domain.DefaultMetricsPolicy().AverageSpeedKmh)
	if err != nil {
		return nil, err
	}
	perStop, err := Float("ROUTE_PER_STOP_MINUTES", domain.DefaultMetricsPolicy().PerStopMinutes)
	if err != nil {
		return nil, err
	}
	rps, err := Float("GEOCODE_RATE_PER_SEC", 5)
	if err != nil {
		return nil, err
	}
	refine, err := Duration("REFINE_TIMEOUT", 8*time.Second)
	if err != nil {
		return nil, err
	}
	ttl, err := Duration("GEOCODE_CACHE_TTL", 30*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              Get("PORT", "8080"),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBPath:            Get("DB_PATH", "data/app.db"),
		SeedPath:          Get("SEED_PATH", "data/seeds/orders.json"),
		RoutingProvider:   strings.ToLower(Get("ROUTING_PROVIDER", "none")),
		ORSAPIKey:         strings.TrimSpace(os.Getenv("ORS_API_KEY")),
		GoogleMapsAPIKey:  strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		GeocodeCountry:    Get("GEOCODE_COUNTRY", "PE"),
		GeocodeRatePerSec: rps,
		GeocodeCache:      strings.ToLower(Get("GEOCODE_CACHE", "sql")),
		RedisAddr:         Get("REDIS_ADDR", "localhost:6379"),
		GeocodeCacheTTL:   ttl,
		RefineTimeout:     refine,
		Policy: domain.MetricsPolicy{
			AverageSpeedKmh: speed,
			PerStopMinutes:  perStop,
		},
		LogLevel:  Get("LOG_LEVEL", "info"),
		LogPretty: Get("LOG_PRETTY", "false") == "true",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.RoutingProvider {
	case "none":
	case "ors":
		if c.ORSAPIKey == "" {
			return fmt.Errorf("config: ORS_API_KEY is required for ROUTING_PROVIDER=ors")
		}
	case "google":
		if c.GoogleMapsAPIKey == "" {
			return fmt.Errorf("config: GOOGLE_MAPS_API_KEY is required for ROUTING_PROVIDER=google")
		}
	default:
		return fmt.Errorf("config: unknown ROUTING_PROVIDER %q", c.RoutingProvider)
	}

	switch c.GeocodeCache {
	case "sql", "redis", "none":
	default:
		return fmt.Errorf("config: unknown GEOCODE_CACHE %q", c.GeocodeCache)
	}

	if c.RefineTimeout <= 0 {
		return fmt.Errorf("config: REFINE_TIMEOUT must be positive")
	}
	if c.GeocodeRatePerSec <= 0 {
		return fmt.Errorf("config: GEOCODE_RATE_PER_SEC must be positive")
	}
	return nil
}

// Get returns the environment value for key or fallback when unset.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func Float(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return f, nil
}

func Duration(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, v, err)
	}
	return d, nil
}
