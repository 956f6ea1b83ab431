package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"delivery-route-sequencer/internal/domain"
	"delivery-route-sequencer/internal/platform/db"
	"delivery-route-sequencer/internal/platform/obs"
	"delivery-route-sequencer/internal/ports"
)

// SQL-backed implementation of the OrderRepository port.
type SQLOrderRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

var _ ports.OrderRepository = (*SQLOrderRepository)(nil)

func NewSQLOrderRepository(conn *sql.DB, dialect db.Dialect) *SQLOrderRepository {
	return &SQLOrderRepository{DB: conn, Dialect: dialect}
}

const orderColumns = `
	id,
	client_name,
	phone,
	address,
	district,
	products,
	status,
	lat,
	lon,
	scanned_at,
	delivered_at
`

// Return orders matching the filter. With IDs set, results follow the order of
// IDs and unknown ids are skipped.
func (s *SQLOrderRepository) ListOrders(
	ctx context.Context,
	filter ports.OrderFilter,
) (_ []*domain.Order, err error) {
	defer obs.Time(ctx, "orders.List")(&err)

	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	var where []string
	var args []any
	if len(filter.IDs) > 0 {
		where = append(where, "id IN ("+db.Placeholders(len(filter.IDs))+")")
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if d := strings.TrimSpace(filter.District); d != "" {
		where = append(where, "district = ?")
		args = append(args, d)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := "SELECT" + orderColumns + "FROM orders"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY scanned_at, id;"

	rows, err := s.DB.QueryContext(ctx, db.Rebind(s.Dialect, query), args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: query orders table: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, 64)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	if len(filter.IDs) > 0 {
		orders = orderByIDs(orders, filter.IDs)
	}
	return orders, nil
}

func (s *SQLOrderRepository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, "SELECT"+orderColumns+"FROM orders WHERE id = ?;")
	o, err := scanOrder(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get order %q: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get order %q: %w", id, err)
	}
	return o, nil
}

// Insert the order or replace every column of an existing one.
func (s *SQLOrderRepository) SaveOrder(ctx context.Context, o *domain.Order) error {
	if s.DB == nil {
		return errors.New("sql order repository: DB is nil")
	}
	if o == nil || strings.TrimSpace(o.ID) == "" {
		return errors.New("save order: order id cannot be empty")
	}

	products, err := json.Marshal(o.Products)
	if err != nil {
		return fmt.Errorf("save order %q: encode products: %w", o.ID, err)
	}

	var lat, lon sql.NullFloat64
	if o.Location != nil {
		lat = sql.NullFloat64{Float64: o.Location.Latitude, Valid: true}
		lon = sql.NullFloat64{Float64: o.Location.Longitude, Valid: true}
	}

	var deliveredAt sql.NullTime
	if o.DeliveredAt != nil {
		deliveredAt = sql.NullTime{Time: o.DeliveredAt.UTC(), Valid: true}
	}

	query := `
	INSERT INTO orders (` + orderColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (id) DO UPDATE
	SET client_name = excluded.client_name,
		phone = excluded.phone,
		address = excluded.address,
		district = excluded.district,
		products = excluded.products,
		status = excluded.status,
		lat = excluded.lat,
		lon = excluded.lon,
		scanned_at = excluded.scanned_at,
		delivered_at = excluded.delivered_at;
	`
	_, err = s.DB.ExecContext(ctx, db.Rebind(s.Dialect, query),
		o.ID,
		o.ClientName,
		o.Phone,
		o.Address,
		o.District,
		string(products),
		string(o.Status),
		lat,
		lon,
		o.ScannedAt.UTC(),
		deliveredAt,
	)
	if err != nil {
		return fmt.Errorf("save order %q: %w", o.ID, err)
	}
	return nil
}

func (s *SQLOrderRepository) UpdateLocation(ctx context.Context, id string, loc domain.GeoPoint) error {
	if !loc.Valid() {
		return fmt.Errorf("update location %q: coordinate out of range", id)
	}

	return s.exec(ctx, "update location", id,
		"UPDATE orders SET lat = ?, lon = ? WHERE id = ?;",
		loc.Latitude, loc.Longitude, id,
	)
}

// Set the status; delivered_at is stamped for delivered orders and cleared otherwise.
func (s *SQLOrderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	if _, err := domain.ParseOrderStatus(string(status)); err != nil {
		return fmt.Errorf("update status %q: %w", id, err)
	}

	var deliveredAt sql.NullTime
	if status == domain.OrderDelivered {
		deliveredAt = sql.NullTime{Time: time.Now().UTC(), Valid: true}
	}

	return s.exec(ctx, "update status", id,
		"UPDATE orders SET status = ?, delivered_at = ? WHERE id = ?;",
		string(status), deliveredAt, id,
	)
}

func (s *SQLOrderRepository) DistrictSummaries(ctx context.Context) ([]domain.DistrictSummary, error) {
	if s.DB == nil {
		return nil, errors.New("sql order repository: DB is nil")
	}

	query := db.Rebind(s.Dialect, `
	SELECT
		district,
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN status = ? THEN 1 ELSE 0 END)
	FROM orders
	GROUP BY district
	ORDER BY district;
	`)

	rows, err := s.DB.QueryContext(ctx, query,
		string(domain.OrderPending), string(domain.OrderDelivered), string(domain.OrderFailed))
	if err != nil {
		return nil, fmt.Errorf("district summaries: query orders table: %w", err)
	}
	defer rows.Close()

	var out []domain.DistrictSummary
	for rows.Next() {
		var ds domain.DistrictSummary
		if err := rows.Scan(&ds.District, &ds.Pending, &ds.Delivered, &ds.Failed); err != nil {
			return nil, fmt.Errorf("district summaries: scan row: %w", err)
		}
		out = append(out, ds)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("district summaries: row iteration: %w", err)
	}
	return out, nil
}

func (s *SQLOrderRepository) exec(ctx context.Context, op, id, query string, args ...any) error {
	if s.DB == nil {
		return errors.New("sql order repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, db.Rebind(s.Dialect, query), args...)
	if err != nil {
		return fmt.Errorf("%s %q: %w", op, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %q: rows affected: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %q: %w", op, id, domain.ErrOrderNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(r rowScanner) (*domain.Order, error) {
	var (
		o           domain.Order
		products    string
		status      string
		lat, lon    sql.NullFloat64
		deliveredAt sql.NullTime
	)

	err := r.Scan(
		&o.ID,
		&o.ClientName,
		&o.Phone,
		&o.Address,
		&o.District,
		&products,
		&status,
		&lat,
		&lon,
		&o.ScannedAt,
		&deliveredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan order: %w", err)
	}

	if err := json.Unmarshal([]byte(products), &o.Products); err != nil {
		return nil, fmt.Errorf("scan order %q: decode products: %w", o.ID, err)
	}
	o.Status = domain.OrderStatus(status)
	if lat.Valid && lon.Valid {
		o.Location = &domain.GeoPoint{Latitude: lat.Float64, Longitude: lon.Float64}
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		o.DeliveredAt = &t
	}
	return &o, nil
}

func orderByIDs(orders []*domain.Order, ids []string) []*domain.Order {
	byID := make(map[string]*domain.Order, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
	}

	out := make([]*domain.Order, 0, len(orders))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if o, ok := byID[id]; ok && !seen[id] {
			seen[id] = true
			out = append(out, o)
		}
	}
	return out
}
