package rental

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/rental-engine/pricing"
)

// =============================================================================
// CATALOG RECORDS
// =============================================================================

// Brand is a tool manufacturer.
type Brand struct {
	ID   int64
	Name string
}

// ToolType groups tools that share a daily rate and charge policy.
type ToolType struct {
	ID     int64
	Name   string
	Policy pricing.ChargePolicy
}

// Tool is a rentable item. BrandName, TypeName and Policy are filled in by
// the store from the referenced brand and type.
type Tool struct {
	ID        int64
	Code      string
	BrandID   int64
	BrandName string
	TypeID    int64
	TypeName  string
	Policy    pricing.ChargePolicy
}

// =============================================================================
// RENTAL RECORDS
// =============================================================================

// Rental is a persisted checkout.
type Rental struct {
	ID              int64
	ToolID          int64
	CheckoutDate    pricing.Date
	DayCount        int
	DiscountPercent int
	CreatedAt       time.Time
}

// CheckoutRequest is an unvalidated checkout or quote request.
type CheckoutRequest struct {
	ToolID          int64
	CheckoutDate    string // yyyy-MM-dd
	DayCount        int
	DiscountPercent int
}

// =============================================================================
// STORE INTERFACES
// =============================================================================

// Lookups return (nil, nil) when the record does not exist.

// ToolReader resolves tools together with their type policy and brand.
type ToolReader interface {
	GetTool(ctx context.Context, id int64) (*Tool, error)
}

// Store is what the agreement service needs from persistence.
type Store interface {
	ToolReader

	// CreateRental persists r and returns it with ID and CreatedAt set.
	CreateRental(ctx context.Context, r Rental) (Rental, error)
	GetRental(ctx context.Context, id int64) (*Rental, error)
	// ListRentalsByTool returns a tool's rentals, oldest first.
	ListRentalsByTool(ctx context.Context, toolID int64) ([]Rental, error)
}

// CatalogStore persists brands, tool types and tools.
// Create methods return *DuplicateError when a unique key is taken.
type CatalogStore interface {
	ToolReader

	CreateBrand(ctx context.Context, b Brand) (Brand, error)
	GetBrand(ctx context.Context, id int64) (*Brand, error)
	FindBrandByName(ctx context.Context, name string) (*Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)

	CreateToolType(ctx context.Context, tt ToolType) (ToolType, error)
	GetToolType(ctx context.Context, id int64) (*ToolType, error)
	FindToolTypeByName(ctx context.Context, name string) (*ToolType, error)
	ListToolTypes(ctx context.Context) ([]ToolType, error)

	CreateTool(ctx context.Context, t Tool) (Tool, error)
	FindToolByCode(ctx context.Context, code string) (*Tool, error)
	ListTools(ctx context.Context) ([]Tool, error)
}

// newPolicy is shorthand used by the catalog seed.
func newPolicy(rate decimal.Decimal, weekday, weekend, holiday bool) pricing.ChargePolicy {
	return pricing.ChargePolicy{
		DailyRate:     rate,
		ChargeWeekday: weekday,
		ChargeWeekend: weekend,
		ChargeHoliday: holiday,
	}
}
