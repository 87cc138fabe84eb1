package rental

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// =============================================================================
// CATALOG SERVICE - Brands, tool types and tools
// =============================================================================

// Catalog manages the rentable tool catalog.
type Catalog struct {
	store CatalogStore
}

// NewCatalog creates a catalog backed by store.
func NewCatalog(store CatalogStore) *Catalog {
	return &Catalog{store: store}
}

// AddBrand creates a brand with a unique name.
func (c *Catalog) AddBrand(ctx context.Context, name string) (Brand, error) {
	v := &ValidationError{}
	validateName(v, "brand name", name)
	if err := v.orNil(); err != nil {
		return Brand{}, err
	}

	existing, err := c.store.FindBrandByName(ctx, name)
	if err != nil {
		return Brand{}, fmt.Errorf("failed to check brand name: %w", err)
	}
	if existing != nil {
		return Brand{}, &DuplicateError{Kind: "tool brand", Value: name}
	}
	return c.store.CreateBrand(ctx, Brand{Name: name})
}

// ListBrands returns all brands.
func (c *Catalog) ListBrands(ctx context.Context) ([]Brand, error) {
	return c.store.ListBrands(ctx)
}

// AddToolType creates a tool type with a unique name and non-negative rate.
func (c *Catalog) AddToolType(ctx context.Context, tt ToolType) (ToolType, error) {
	v := &ValidationError{}
	validateName(v, "tool type name", tt.Name)
	if tt.Policy.DailyRate.IsNegative() {
		v.add("daily charge must be 0 or greater")
	}
	if err := v.orNil(); err != nil {
		return ToolType{}, err
	}

	existing, err := c.store.FindToolTypeByName(ctx, tt.Name)
	if err != nil {
		return ToolType{}, fmt.Errorf("failed to check tool type name: %w", err)
	}
	if existing != nil {
		return ToolType{}, &DuplicateError{Kind: "tool type", Value: tt.Name}
	}

	tt.ID = 0
	tt.Policy.DailyRate = tt.Policy.DailyRate.Round(2)
	return c.store.CreateToolType(ctx, tt)
}

// ListToolTypes returns all tool types.
func (c *Catalog) ListToolTypes(ctx context.Context) ([]ToolType, error) {
	return c.store.ListToolTypes(ctx)
}

// AddTool creates a tool referencing an existing brand and type.
func (c *Catalog) AddTool(ctx context.Context, code string, brandID, typeID int64) (Tool, error) {
	v := &ValidationError{}
	validateToolCode(v, code)
	if brandID < 1 {
		v.add("tool brand id must be a positive number")
	}
	if typeID < 1 {
		v.add("tool type id must be a positive number")
	}
	if err := v.orNil(); err != nil {
		return Tool{}, err
	}

	existing, err := c.store.FindToolByCode(ctx, code)
	if err != nil {
		return Tool{}, fmt.Errorf("failed to check tool code: %w", err)
	}
	if existing != nil {
		return Tool{}, &DuplicateError{Kind: "tool", Value: code}
	}

	brand, err := c.store.GetBrand(ctx, brandID)
	if err != nil {
		return Tool{}, fmt.Errorf("failed to load brand %d: %w", brandID, err)
	}
	if brand == nil {
		return Tool{}, fmt.Errorf("brand %d: %w", brandID, ErrBrandNotFound)
	}
	tt, err := c.store.GetToolType(ctx, typeID)
	if err != nil {
		return Tool{}, fmt.Errorf("failed to load tool type %d: %w", typeID, err)
	}
	if tt == nil {
		return Tool{}, fmt.Errorf("tool type %d: %w", typeID, ErrToolTypeNotFound)
	}

	return c.store.CreateTool(ctx, Tool{
		Code:      code,
		BrandID:   brand.ID,
		BrandName: brand.Name,
		TypeID:    tt.ID,
		TypeName:  tt.Name,
		Policy:    tt.Policy,
	})
}

// ListTools returns all tools.
func (c *Catalog) ListTools(ctx context.Context) ([]Tool, error) {
	return c.store.ListTools(ctx)
}

// GetTool returns a tool or ErrToolNotFound.
func (c *Catalog) GetTool(ctx context.Context, id int64) (Tool, error) {
	t, err := c.store.GetTool(ctx, id)
	if err != nil {
		return Tool{}, fmt.Errorf("failed to load tool %d: %w", id, err)
	}
	if t == nil {
		return Tool{}, fmt.Errorf("tool %d: %w", id, ErrToolNotFound)
	}
	return *t, nil
}

// =============================================================================
// SEEDING
// =============================================================================

// CatalogSeed is a declarative catalog, usually read from YAML.
type CatalogSeed struct {
	Brands    []string       `yaml:"brands"`
	ToolTypes []SeedToolType `yaml:"tool_types"`
	Tools     []SeedTool     `yaml:"tools"`
}

// SeedToolType describes a tool type in a CatalogSeed.
type SeedToolType struct {
	Name          string `yaml:"name"`
	DailyCharge   string `yaml:"daily_charge"`
	WeekdayCharge bool   `yaml:"weekday_charge"`
	WeekendCharge bool   `yaml:"weekend_charge"`
	HolidayCharge bool   `yaml:"holiday_charge"`
}

// SeedTool references its brand and type by name.
type SeedTool struct {
	Code  string `yaml:"code"`
	Brand string `yaml:"brand"`
	Type  string `yaml:"type"`
}

// Seed loads seed into the catalog. Records that already exist by name or
// code are left untouched, so seeding twice is harmless.
func (c *Catalog) Seed(ctx context.Context, seed CatalogSeed) error {
	brandIDs := make(map[string]int64)
	for _, name := range seed.Brands {
		b, err := c.ensureBrand(ctx, name)
		if err != nil {
			return err
		}
		brandIDs[name] = b.ID
	}

	typeIDs := make(map[string]int64)
	for _, st := range seed.ToolTypes {
		rate, err := decimal.NewFromString(st.DailyCharge)
		if err != nil {
			return fmt.Errorf("tool type %q: invalid daily charge %q: %w", st.Name, st.DailyCharge, err)
		}
		tt, err := c.ensureToolType(ctx, ToolType{
			Name:   st.Name,
			Policy: newPolicy(rate, st.WeekdayCharge, st.WeekendCharge, st.HolidayCharge),
		})
		if err != nil {
			return err
		}
		typeIDs[st.Name] = tt.ID
	}

	created := 0
	for _, st := range seed.Tools {
		existing, err := c.store.FindToolByCode(ctx, st.Code)
		if err != nil {
			return fmt.Errorf("failed to check tool code: %w", err)
		}
		if existing != nil {
			continue
		}
		brandID, ok := brandIDs[st.Brand]
		if !ok {
			return fmt.Errorf("tool %s: brand %q: %w", st.Code, st.Brand, ErrBrandNotFound)
		}
		typeID, ok := typeIDs[st.Type]
		if !ok {
			return fmt.Errorf("tool %s: type %q: %w", st.Code, st.Type, ErrToolTypeNotFound)
		}
		if _, err := c.AddTool(ctx, st.Code, brandID, typeID); err != nil {
			return fmt.Errorf("tool %s: %w", st.Code, err)
		}
		created++
	}

	log.Printf("[Catalog] Seeded %d brands, %d tool types, %d new tools",
		len(brandIDs), len(typeIDs), created)
	return nil
}

func (c *Catalog) ensureBrand(ctx context.Context, name string) (Brand, error) {
	existing, err := c.store.FindBrandByName(ctx, name)
	if err != nil {
		return Brand{}, fmt.Errorf("failed to check brand name: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}
	b, err := c.AddBrand(ctx, name)
	if err != nil {
		return Brand{}, fmt.Errorf("brand %q: %w", name, err)
	}
	return b, nil
}

func (c *Catalog) ensureToolType(ctx context.Context, tt ToolType) (ToolType, error) {
	existing, err := c.store.FindToolTypeByName(ctx, tt.Name)
	if err != nil {
		return ToolType{}, fmt.Errorf("failed to check tool type name: %w", err)
	}
	if existing != nil {
		return *existing, nil
	}
	created, err := c.AddToolType(ctx, tt)
	if err != nil {
		return ToolType{}, fmt.Errorf("tool type %q: %w", tt.Name, err)
	}
	return created, nil
}
