package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"delivery-route-sequencer/internal/intake"
	"delivery-route-sequencer/internal/platform/db"
)

// Initialize the database schema for the given dialect.
func InitSchema(conn *sql.DB, dialect db.Dialect) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	floatType, timeType := "REAL", "TIMESTAMP"
	if dialect == db.Postgres {
		floatType, timeType = "DOUBLE PRECISION", "TIMESTAMPTZ"
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		id TEXT PRIMARY KEY,
		client_name TEXT NOT NULL,
		phone TEXT NOT NULL,
		address TEXT NOT NULL,
		district TEXT NOT NULL,
		products TEXT NOT NULL,
		status TEXT NOT NULL,
		lat ` + floatType + `,
		lon ` + floatType + `,
		scanned_at ` + timeType + ` NOT NULL,
		delivered_at ` + timeType + `
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lat ` + floatType + ` NOT NULL,
		lon ` + floatType + ` NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_district_status
	ON orders(district, status);
	`

	statements := []string{
		createOrdersQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the database with orders from a JSON array of QR payloads.
// Returns the number of orders stored.
func SeedFromJSON(ctx context.Context, repo *SQLOrderRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed orders: read %q: %w", jsonPath, err)
	}

	var payloads []json.RawMessage
	if err := json.Unmarshal(bytes, &payloads); err != nil {
		return 0, fmt.Errorf("seed orders: parse json: %w", err)
	}

	for i, raw := range payloads {
		order, err := intake.ParsePayload(raw)
		if err != nil {
			return i, fmt.Errorf("seed orders: item at index %d: %w", i+1, err)
		}
		if err := repo.SaveOrder(ctx, order); err != nil {
			return i, fmt.Errorf("seed orders: item at index %d: %w", i+1, err)
		}
	}

	return len(payloads), nil
}
