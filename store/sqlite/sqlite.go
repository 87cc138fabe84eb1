/*
Package sqlite provides a SQLite-backed implementation of the rental stores.

PURPOSE:
  Persists the tool catalog (brands, tool types, tools) and checkouts
  (rentals). Pricing is never stored: agreements are recomputed from the
  rental row and the tool's current type policy.

INTERFACES IMPLEMENTED:
  rental.Store:        Tool lookup + rental persistence
  rental.CatalogStore: Brand / tool type / tool management

KEY TABLES:
  tool_brands:  Manufacturer names (unique)
  tool_types:   Daily charge + weekday/weekend/holiday flags (unique name)
  tools:        Tool code (unique) -> brand, type
  rentals:      Tool, checkout date, day count, discount

MONEY:
  daily_charge is stored as TEXT holding a decimal string, so rates
  survive the round trip without floating-point drift.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, and WAL mode so readers do not
  block each other.

USAGE:
  store, err := sqlite.New("./data/rentals.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  svc := rental.NewService(store)

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - rental/types.go: Interface definitions
  - rental/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/rental-engine/pricing"
	"github.com/warp/rental-engine/rental"
)

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each pooled connection would get its own empty in-memory database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tool_brands (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tool_types (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		daily_charge TEXT NOT NULL,
		weekday_charge BOOLEAN NOT NULL,
		weekend_charge BOOLEAN NOT NULL,
		holiday_charge BOOLEAN NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tools (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		code TEXT NOT NULL UNIQUE,
		tool_brand_id INTEGER NOT NULL REFERENCES tool_brands(id),
		tool_type_id INTEGER NOT NULL REFERENCES tool_types(id),
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_tools_brand ON tools(tool_brand_id);
	CREATE INDEX IF NOT EXISTS idx_tools_type ON tools(tool_type_id);

	CREATE TABLE IF NOT EXISTS rentals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		tool_id INTEGER NOT NULL REFERENCES tools(id),
		checkout_date TEXT NOT NULL,
		day_count INTEGER NOT NULL CHECK (day_count >= 1),
		discount_percent INTEGER NOT NULL CHECK (discount_percent BETWEEN 0 AND 100),
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rentals_tool ON rentals(tool_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// BRANDS
// =============================================================================

// CreateBrand inserts a brand.
func (s *Store) CreateBrand(ctx context.Context, b rental.Brand) (rental.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tool_brands (name, created_at) VALUES (?, ?)",
		b.Name, now(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return rental.Brand{}, &rental.DuplicateError{Kind: "tool brand", Value: b.Name}
		}
		return rental.Brand{}, fmt.Errorf("failed to insert brand: %w", err)
	}
	b.ID, err = res.LastInsertId()
	return b, err
}

// GetBrand retrieves a brand by ID.
func (s *Store) GetBrand(ctx context.Context, id int64) (*rental.Brand, error) {
	return s.queryBrand(ctx, "SELECT id, name FROM tool_brands WHERE id = ?", id)
}

// FindBrandByName retrieves a brand by exact name.
func (s *Store) FindBrandByName(ctx context.Context, name string) (*rental.Brand, error) {
	return s.queryBrand(ctx, "SELECT id, name FROM tool_brands WHERE name = ?", name)
}

func (s *Store) queryBrand(ctx context.Context, query string, arg any) (*rental.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var b rental.Brand
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&b.ID, &b.Name)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListBrands returns all brands.
func (s *Store) ListBrands(ctx context.Context) ([]rental.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM tool_brands ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brands := []rental.Brand{}
	for rows.Next() {
		var b rental.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, err
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// =============================================================================
// TOOL TYPES
// =============================================================================

const toolTypeColumns = "id, name, daily_charge, weekday_charge, weekend_charge, holiday_charge"

// CreateToolType inserts a tool type.
func (s *Store) CreateToolType(ctx context.Context, tt rental.ToolType) (rental.ToolType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO tool_types (name, daily_charge, weekday_charge, weekend_charge, holiday_charge, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		tt.Name,
		tt.Policy.DailyRate.String(),
		tt.Policy.ChargeWeekday,
		tt.Policy.ChargeWeekend,
		tt.Policy.ChargeHoliday,
		now(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return rental.ToolType{}, &rental.DuplicateError{Kind: "tool type", Value: tt.Name}
		}
		return rental.ToolType{}, fmt.Errorf("failed to insert tool type: %w", err)
	}
	tt.ID, err = res.LastInsertId()
	return tt, err
}

// GetToolType retrieves a tool type by ID.
func (s *Store) GetToolType(ctx context.Context, id int64) (*rental.ToolType, error) {
	return s.queryToolType(ctx, "SELECT "+toolTypeColumns+" FROM tool_types WHERE id = ?", id)
}

// FindToolTypeByName retrieves a tool type by exact name.
func (s *Store) FindToolTypeByName(ctx context.Context, name string) (*rental.ToolType, error) {
	return s.queryToolType(ctx, "SELECT "+toolTypeColumns+" FROM tool_types WHERE name = ?", name)
}

func (s *Store) queryToolType(ctx context.Context, query string, arg any) (*rental.ToolType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tt, err := scanToolType(s.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// ListToolTypes returns all tool types.
func (s *Store) ListToolTypes(ctx context.Context) ([]rental.ToolType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT "+toolTypeColumns+" FROM tool_types ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := []rental.ToolType{}
	for rows.Next() {
		tt, err := scanToolType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, tt)
	}
	return types, rows.Err()
}

func scanToolType(row scanner) (rental.ToolType, error) {
	var (
		tt   rental.ToolType
		rate string
	)
	err := row.Scan(&tt.ID, &tt.Name, &rate,
		&tt.Policy.ChargeWeekday, &tt.Policy.ChargeWeekend, &tt.Policy.ChargeHoliday)
	if err != nil {
		return tt, err
	}
	tt.Policy.DailyRate, err = parseDecimal(rate)
	return tt, err
}

// =============================================================================
// TOOLS
// =============================================================================

// toolQuery joins a tool with its brand and type so callers get the
// charge policy in one read.
const toolQuery = `
	SELECT t.id, t.code, b.id, b.name, ty.id, ty.name,
	       ty.daily_charge, ty.weekday_charge, ty.weekend_charge, ty.holiday_charge
	FROM tools t
	JOIN tool_brands b ON b.id = t.tool_brand_id
	JOIN tool_types ty ON ty.id = t.tool_type_id
`

// CreateTool inserts a tool and returns it joined with brand and type.
func (s *Store) CreateTool(ctx context.Context, t rental.Tool) (rental.Tool, error) {
	s.mu.Lock()
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO tools (code, tool_brand_id, tool_type_id, created_at) VALUES (?, ?, ?, ?)",
		t.Code, t.BrandID, t.TypeID, now(),
	)
	s.mu.Unlock()
	if err != nil {
		switch {
		case isUniqueConstraintError(err):
			return rental.Tool{}, &rental.DuplicateError{Kind: "tool", Value: t.Code}
		case isForeignKeyError(err):
			return rental.Tool{}, fmt.Errorf("tool %s: unknown brand or type: %w", t.Code, rental.ErrInvalidRequest)
		}
		return rental.Tool{}, fmt.Errorf("failed to insert tool: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return rental.Tool{}, err
	}
	created, err := s.GetTool(ctx, id)
	if err != nil {
		return rental.Tool{}, err
	}
	if created == nil {
		return rental.Tool{}, fmt.Errorf("tool %d vanished after insert", id)
	}
	return *created, nil
}

// GetTool retrieves a tool by ID.
func (s *Store) GetTool(ctx context.Context, id int64) (*rental.Tool, error) {
	return s.queryTool(ctx, toolQuery+" WHERE t.id = ?", id)
}

// FindToolByCode retrieves a tool by code.
func (s *Store) FindToolByCode(ctx context.Context, code string) (*rental.Tool, error) {
	return s.queryTool(ctx, toolQuery+" WHERE t.code = ?", code)
}

func (s *Store) queryTool(ctx context.Context, query string, arg any) (*rental.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, err := scanTool(s.db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTools returns all tools.
func (s *Store) ListTools(ctx context.Context) ([]rental.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, toolQuery+" ORDER BY t.id")
	if err != nil {
		return nil, fmt.Errorf("failed to query tools: %w", err)
	}
	defer rows.Close()

	tools := []rental.Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tool: %w", err)
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

func scanTool(row scanner) (rental.Tool, error) {
	var (
		t    rental.Tool
		rate string
	)
	err := row.Scan(&t.ID, &t.Code, &t.BrandID, &t.BrandName, &t.TypeID, &t.TypeName,
		&rate, &t.Policy.ChargeWeekday, &t.Policy.ChargeWeekend, &t.Policy.ChargeHoliday)
	if err != nil {
		return t, err
	}
	t.Policy.DailyRate, err = parseDecimal(rate)
	return t, err
}

// =============================================================================
// RENTALS
// =============================================================================

// CreateRental inserts a rental.
func (s *Store) CreateRental(ctx context.Context, r rental.Rental) (rental.Rental, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	createdAt := time.Now().UTC().Truncate(time.Second)
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO rentals (tool_id, checkout_date, day_count, discount_percent, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		r.ToolID,
		r.CheckoutDate.String(),
		r.DayCount,
		r.DiscountPercent,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		if isForeignKeyError(err) {
			return rental.Rental{}, fmt.Errorf("tool %d: %w", r.ToolID, rental.ErrToolNotFound)
		}
		return rental.Rental{}, fmt.Errorf("failed to insert rental: %w", err)
	}

	r.ID, err = res.LastInsertId()
	if err != nil {
		return rental.Rental{}, err
	}
	r.CreatedAt = createdAt
	return r, nil
}

// GetRental retrieves a rental by ID.
func (s *Store) GetRental(ctx context.Context, id int64) (*rental.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		r            rental.Rental
		checkoutDate string
		createdAt    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, tool_id, checkout_date, day_count, discount_percent, created_at FROM rentals WHERE id = ?",
		id,
	).Scan(&r.ID, &r.ToolID, &checkoutDate, &r.DayCount, &r.DiscountPercent, &createdAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if r.CheckoutDate, err = pricing.ParseDate(checkoutDate); err != nil {
		return nil, fmt.Errorf("rental %d: %w", id, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &r, nil
}

// ListRentalsByTool returns the rentals of a tool, oldest first.
func (s *Store) ListRentalsByTool(ctx context.Context, toolID int64) ([]rental.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, tool_id, checkout_date, day_count, discount_percent, created_at FROM rentals WHERE tool_id = ? ORDER BY id",
		toolID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rentals := []rental.Rental{}
	for rows.Next() {
		var (
			r            rental.Rental
			checkoutDate string
			createdAt    string
		)
		if err := rows.Scan(&r.ID, &r.ToolID, &checkoutDate, &r.DayCount, &r.DiscountPercent, &createdAt); err != nil {
			return nil, err
		}
		if r.CheckoutDate, err = pricing.ParseDate(checkoutDate); err != nil {
			return nil, fmt.Errorf("rental %d: %w", r.ID, err)
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		rentals = append(rentals, r)
	}
	return rentals, rows.Err()
}

// Helper functions

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var (
	_ rental.Store        = (*Store)(nil)
	_ rental.CatalogStore = (*Store)(nil)
)
