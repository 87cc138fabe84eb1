// Package store provides in-memory rental.Store and rental.CatalogStore
// implementations.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	brands  map[int64]rental.Brand
	types   map[int64]rental.ToolType
	tools   map[int64]rental.Tool
	rentals map[int64]rental.Rental
	nextID  int64
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		brands:  make(map[int64]rental.Brand),
		types:   make(map[int64]rental.ToolType),
		tools:   make(map[int64]rental.Tool),
		rentals: make(map[int64]rental.Rental),
		now:     time.Now,
	}
}

// id hands out one sequence across all tables; callers hold mu.
func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

// =============================================================================
// BRANDS
// =============================================================================

func (m *Memory) CreateBrand(_ context.Context, b rental.Brand) (rental.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.brands {
		if existing.Name == b.Name {
			return rental.Brand{}, &rental.DuplicateError{Kind: "tool brand", Value: b.Name}
		}
	}
	b.ID = m.id()
	m.brands[b.ID] = b
	return b, nil
}

func (m *Memory) GetBrand(_ context.Context, id int64) (*rental.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.brands[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m *Memory) FindBrandByName(_ context.Context, name string) (*rental.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.brands {
		if b.Name == name {
			return &b, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListBrands(_ context.Context) ([]rental.Brand, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rental.Brand, 0, len(m.brands))
	for _, b := range m.brands {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// TOOL TYPES
// =============================================================================

func (m *Memory) CreateToolType(_ context.Context, tt rental.ToolType) (rental.ToolType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.types {
		if existing.Name == tt.Name {
			return rental.ToolType{}, &rental.DuplicateError{Kind: "tool type", Value: tt.Name}
		}
	}
	tt.ID = m.id()
	m.types[tt.ID] = tt
	return tt, nil
}

func (m *Memory) GetToolType(_ context.Context, id int64) (*rental.ToolType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tt, ok := m.types[id]
	if !ok {
		return nil, nil
	}
	return &tt, nil
}

func (m *Memory) FindToolTypeByName(_ context.Context, name string) (*rental.ToolType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, tt := range m.types {
		if tt.Name == name {
			return &tt, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListToolTypes(_ context.Context) ([]rental.ToolType, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rental.ToolType, 0, len(m.types))
	for _, tt := range m.types {
		result = append(result, tt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// =============================================================================
// TOOLS
// =============================================================================

// CreateTool stores t. Brand and type names are resolved on read.
func (m *Memory) CreateTool(_ context.Context, t rental.Tool) (rental.Tool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.tools {
		if existing.Code == t.Code {
			return rental.Tool{}, &rental.DuplicateError{Kind: "tool", Value: t.Code}
		}
	}
	if _, ok := m.brands[t.BrandID]; !ok {
		return rental.Tool{}, rental.ErrBrandNotFound
	}
	if _, ok := m.types[t.TypeID]; !ok {
		return rental.Tool{}, rental.ErrToolTypeNotFound
	}

	t.ID = m.id()
	m.tools[t.ID] = rental.Tool{ID: t.ID, Code: t.Code, BrandID: t.BrandID, TypeID: t.TypeID}
	return m.resolveLocked(m.tools[t.ID]), nil
}

func (m *Memory) GetTool(_ context.Context, id int64) (*rental.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.tools[id]
	if !ok {
		return nil, nil
	}
	resolved := m.resolveLocked(t)
	return &resolved, nil
}

func (m *Memory) FindToolByCode(_ context.Context, code string) (*rental.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tools {
		if t.Code == code {
			resolved := m.resolveLocked(t)
			return &resolved, nil
		}
	}
	return nil, nil
}

func (m *Memory) ListTools(_ context.Context) ([]rental.Tool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]rental.Tool, 0, len(m.tools))
	for _, t := range m.tools {
		result = append(result, m.resolveLocked(t))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// resolveLocked joins a tool with its brand and type, like the SQL store does.
func (m *Memory) resolveLocked(t rental.Tool) rental.Tool {
	brand := m.brands[t.BrandID]
	tt := m.types[t.TypeID]
	t.BrandName = brand.Name
	t.TypeName = tt.Name
	t.Policy = tt.Policy
	return t
}

// =============================================================================
// RENTALS
// =============================================================================

func (m *Memory) CreateRental(_ context.Context, r rental.Rental) (rental.Rental, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.tools[r.ToolID]; !ok {
		return rental.Rental{}, rental.ErrToolNotFound
	}
	r.ID = m.id()
	r.CreatedAt = m.now().UTC()
	m.rentals[r.ID] = r
	return r, nil
}

func (m *Memory) GetRental(_ context.Context, id int64) (*rental.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rentals[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *Memory) ListRentalsByTool(_ context.Context, toolID int64) ([]rental.Rental, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []rental.Rental{}
	for _, r := range m.rentals {
		if r.ToolID == toolID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

var (
	_ rental.Store        = (*Memory)(nil)
	_ rental.CatalogStore = (*Memory)(nil)
)
