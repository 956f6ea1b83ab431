package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"delivery-route-sequencer/internal/adapters/cache"
	"delivery-route-sequencer/internal/adapters/repositories"
	"delivery-route-sequencer/internal/adapters/routing"
	"delivery-route-sequencer/internal/api"
	"delivery-route-sequencer/internal/config"
	"delivery-route-sequencer/internal/platform/db"
	"delivery-route-sequencer/internal/platform/obs"
	"delivery-route-sequencer/internal/ports"
	"delivery-route-sequencer/internal/services"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"googlemaps.github.io/maps"
)

// main is the application composition root.
// It wires concrete adapters (SQL, geocode cache, routing provider) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	obs.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	if cfg.DatabaseURL == "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("create database directory")
		}
	}

	conn, dialect, err := db.Open(cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	repo := repositories.NewSQLOrderRepository(conn, dialect)

	// Initialize schema and seed demo data on first start.
	if err := initAndSeed(conn, dialect, repo, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Msg("init database")
	}

	geocodeCache, err := newGeocodeCache(cfg, conn, dialect)
	if err != nil {
		log.Fatal().Err(err).Msg("geocode cache")
	}

	geocoder, router, err := newProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("routing provider")
	}

	planner := &services.RoutePlanner{
		Repo:          repo,
		Geocoder:      geocoder,
		Cache:         geocodeCache,
		Router:        router,
		Policy:        cfg.Policy,
		RefineTimeout: cfg.RefineTimeout,
	}

	// Timeouts leave room for cold-cache geocoding before the refinement deadline.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(repo, planner),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Info().
		Str("addr", srv.Addr).
		Str("db", string(dialect)).
		Str("provider", cfg.RoutingProvider).
		Str("geocode_cache", cfg.GeocodeCache).
		Msg("server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func initAndSeed(conn *sql.DB, dialect db.Dialect, repo *repositories.SQLOrderRepository, seedPath string) error {
	if err := repositories.InitSchema(conn, dialect); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if _, err := os.Stat(seedPath); err != nil {
		log.Debug().Str("path", seedPath).Msg("no seed file, skipping seed")
		return nil
	}

	ctx := context.Background()
	existing, err := repo.ListOrders(ctx, ports.OrderFilter{})
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	n, err := repositories.SeedFromJSON(ctx, repo, seedPath)
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	log.Info().Int("orders", n).Str("path", seedPath).Msg("seeded orders")
	return nil
}

func newGeocodeCache(cfg *config.Config, conn *sql.DB, dialect db.Dialect) (ports.GeocodeCache, error) {
	switch cfg.GeocodeCache {
	case "sql":
		return cache.NewSQLGeocodeCache(conn, dialect), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisGeocodeCache(client, cfg.GeocodeCacheTTL), nil
	default:
		return nil, nil
	}
}

// newProvider returns the configured geocoder and road router. Both are nil for "none".
func newProvider(cfg *config.Config) (ports.Geocoder, ports.PolylineRouter, error) {
	switch cfg.RoutingProvider {
	case "ors":
		c, err := routing.NewORSClient(cfg.ORSAPIKey,
			routing.WithORSCountry(cfg.GeocodeCountry),
			routing.WithORSRateLimit(cfg.GeocodeRatePerSec),
		)
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	case "google":
		rps := int(cfg.GeocodeRatePerSec)
		if rps < 1 {
			rps = 1
		}
		c, err := routing.NewGoogleMapsClient(cfg.GoogleMapsAPIKey, cfg.GeocodeCountry, maps.WithRateLimit(rps))
		if err != nil {
			return nil, nil, err
		}
		return c, c, nil
	default:
		return nil, nil, nil
	}
}
