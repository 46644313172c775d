package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/denisok6893-rgb/property-matchmaking/internal/domain"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	defaultListLimit = 20
)

// Store keeps client and property records. Indexed columns are duplicated
// out of the record for filtering; the full record lives in record_json.
// Queries use ? placeholders and are rebound for the driver in use.
type Store struct {
	db *sqlx.DB
}

// Open connects to a sqlite3 or postgres database.
func Open(driver, dsn string) (*Store, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		// A single connection avoids "database is locked" between writers.
		db.SetMaxOpenConns(1)
		if _, err := db.Exec(`PRAGMA journal_mode=WAL;`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("enable WAL: %w", err)
		}
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

var schema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  transaction_type TEXT NOT NULL DEFAULT '',
  property_type TEXT NOT NULL DEFAULT '',
  price DOUBLE PRECISION,
  bedrooms INTEGER,
  record_json TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city)`,
	`CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price)`,
	`CREATE TABLE IF NOT EXISTS clients (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL DEFAULT '',
  intent TEXT NOT NULL DEFAULT '',
  purpose TEXT NOT NULL DEFAULT '',
  record_json TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_clients_intent ON clients(intent)`,
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

type propertyRow struct {
	ID              string   `db:"id"`
	Title           string   `db:"title"`
	City            string   `db:"city"`
	TransactionType string   `db:"transaction_type"`
	PropertyType    string   `db:"property_type"`
	Price           *float64 `db:"price"`
	Bedrooms        *int     `db:"bedrooms"`
	RecordJSON      string   `db:"record_json"`
}

func newPropertyRow(p domain.Property) (propertyRow, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return propertyRow{}, fmt.Errorf("marshal property %s: %w", p.ID, err)
	}
	return propertyRow{
		ID:              p.ID,
		Title:           p.Title,
		City:            p.City,
		TransactionType: strings.ToUpper(string(p.TransactionType)),
		PropertyType:    strings.ToUpper(string(p.PropertyType)),
		Price:           p.Price,
		Bedrooms:        p.Bedrooms,
		RecordJSON:      string(b),
	}, nil
}

type clientRow struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	Intent     string `db:"intent"`
	Purpose    string `db:"purpose"`
	RecordJSON string `db:"record_json"`
}

func newClientRow(c domain.Client) (clientRow, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return clientRow{}, fmt.Errorf("marshal client %s: %w", c.ID, err)
	}
	return clientRow{
		ID:         c.ID,
		Name:       c.Name,
		Intent:     strings.ToUpper(string(c.Intent)),
		Purpose:    strings.ToUpper(string(c.Purpose)),
		RecordJSON: string(b),
	}, nil
}

const (
	insertProperty = `
INSERT INTO properties
(id, title, city, transaction_type, property_type, price, bedrooms, record_json)
VALUES (:id, :title, :city, :transaction_type, :property_type, :price, :bedrooms, :record_json)`
	insertClient = `
INSERT INTO clients
(id, name, intent, purpose, record_json)
VALUES (:id, :name, :intent, :purpose, :record_json)`
	ignoreExisting = `
ON CONFLICT (id) DO NOTHING`
)

// UpsertProperties inserts an initial dataset without duplicating by id.
func (s *Store) UpsertProperties(ctx context.Context, items []domain.Property) error {
	return upsert(ctx, s.db, insertProperty+ignoreExisting, items, func(p domain.Property) (any, error) {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		return newPropertyRow(p)
	})
}

// UpsertClients inserts clients without duplicating by id.
func (s *Store) UpsertClients(ctx context.Context, items []domain.Client) error {
	return upsert(ctx, s.db, insertClient+ignoreExisting, items, func(c domain.Client) (any, error) {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		return newClientRow(c)
	})
}

func upsert[T any](ctx context.Context, db *sqlx.DB, query string, items []T, row func(T) (any, error)) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		r, err := row(item)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, r); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// CreateProperty stores p, assigning an id when it has none.
func (s *Store) CreateProperty(ctx context.Context, p domain.Property) (domain.Property, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	row, err := newPropertyRow(p)
	if err != nil {
		return p, err
	}
	_, err = s.db.NamedExecContext(ctx, insertProperty, row)
	return p, err
}

// CreateClient stores c, assigning an id when it has none.
func (s *Store) CreateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	row, err := newClientRow(c)
	if err != nil {
		return c, err
	}
	_, err = s.db.NamedExecContext(ctx, insertClient, row)
	return c, err
}

func (s *Store) GetProperty(ctx context.Context, id string) (domain.Property, bool, error) {
	return getRecord[domain.Property](ctx, s.db, `SELECT record_json FROM properties WHERE id = ?`, id)
}

func (s *Store) GetClient(ctx context.Context, id string) (domain.Client, bool, error) {
	return getRecord[domain.Client](ctx, s.db, `SELECT record_json FROM clients WHERE id = ?`, id)
}

func getRecord[T any](ctx context.Context, db *sqlx.DB, query, id string) (T, bool, error) {
	var out T
	var raw string
	err := db.GetContext(ctx, &raw, db.Rebind(query), id)
	if errors.Is(err, sql.ErrNoRows) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, false, fmt.Errorf("unmarshal record %s: %w", id, err)
	}
	return out, true, nil
}

func (s *Store) DeleteProperty(ctx context.Context, id string) (bool, error) {
	return s.delete(ctx, `DELETE FROM properties WHERE id = ?`, id)
}

func (s *Store) DeleteClient(ctx context.Context, id string) (bool, error) {
	return s.delete(ctx, `DELETE FROM clients WHERE id = ?`, id)
}

func (s *Store) delete(ctx context.Context, query, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(query), id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// PropertyFilter narrows ListProperties. Zero values disable a condition.
type PropertyFilter struct {
	Limit           int
	Offset          int
	City            string
	MinPrice        float64
	MaxPrice        float64
	MinBedrooms     int
	TransactionType string
	// Sort is "price_asc", "price_desc" or empty for id order.
	Sort string
}

func (s *Store) ListProperties(ctx context.Context, f PropertyFilter) ([]domain.Property, int, error) {
	limit, offset := pageBounds(f.Limit, f.Offset)

	where := make([]string, 0, 5)
	args := make([]any, 0, 7)

	if strings.TrimSpace(f.City) != "" {
		// contains, case-insensitive
		where = append(where, "LOWER(city) LIKE '%' || LOWER(?) || '%'")
		args = append(args, strings.TrimSpace(f.City))
	}
	if f.MinPrice > 0 {
		where = append(where, "price >= ?")
		args = append(args, f.MinPrice)
	}
	if f.MaxPrice > 0 {
		where = append(where, "price <= ?")
		args = append(args, f.MaxPrice)
	}
	if f.MinBedrooms > 0 {
		where = append(where, "bedrooms >= ?")
		args = append(args, f.MinBedrooms)
	}
	if tx := strings.TrimSpace(f.TransactionType); tx != "" {
		where = append(where, "transaction_type = ?")
		args = append(args, strings.ToUpper(tx))
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	orderSQL := "ORDER BY id"
	switch f.Sort {
	case "price_asc":
		orderSQL = "ORDER BY price ASC, id"
	case "price_desc":
		orderSQL = "ORDER BY price DESC, id"
	}

	var total int
	if err := s.db.GetContext(ctx, &total, s.db.Rebind("SELECT COUNT(*) FROM properties "+whereSQL), args...); err != nil {
		return nil, 0, err
	}

	rowsSQL := "SELECT record_json FROM properties " + whereSQL + "\n" + orderSQL + "\nLIMIT ? OFFSET ?"
	rowsArgs := append(append([]any{}, args...), limit, offset)

	var raws []string
	if err := s.db.SelectContext(ctx, &raws, s.db.Rebind(rowsSQL), rowsArgs...); err != nil {
		return nil, 0, err
	}
	out, err := unmarshalAll[domain.Property](raws)
	return out, total, err
}

func (s *Store) ListClients(ctx context.Context, limit, offset int) ([]domain.Client, int, error) {
	limit, offset = pageBounds(limit, offset)

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM clients`); err != nil {
		return nil, 0, err
	}
	var raws []string
	q := s.db.Rebind(`SELECT record_json FROM clients ORDER BY id LIMIT ? OFFSET ?`)
	if err := s.db.SelectContext(ctx, &raws, q, limit, offset); err != nil {
		return nil, 0, err
	}
	out, err := unmarshalAll[domain.Client](raws)
	return out, total, err
}

// AllProperties returns every stored property for a matching run.
func (s *Store) AllProperties(ctx context.Context) ([]domain.Property, error) {
	var raws []string
	if err := s.db.SelectContext(ctx, &raws, `SELECT record_json FROM properties ORDER BY id`); err != nil {
		return nil, err
	}
	return unmarshalAll[domain.Property](raws)
}

// AllClients returns every stored client for a matching run.
func (s *Store) AllClients(ctx context.Context) ([]domain.Client, error) {
	var raws []string
	if err := s.db.SelectContext(ctx, &raws, `SELECT record_json FROM clients ORDER BY id`); err != nil {
		return nil, err
	}
	return unmarshalAll[domain.Client](raws)
}

func unmarshalAll[T any](raws []string) ([]T, error) {
	out := make([]T, 0, len(raws))
	for _, raw := range raws {
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("unmarshal record: %w", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func pageBounds(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
