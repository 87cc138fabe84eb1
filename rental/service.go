/*
Package rental orchestrates tool checkouts around the pricing core.

PURPOSE:
  Looks up tools and rentals in the store, hands the inputs to the pure
  pricing pipeline and returns the computed agreement or its rendered
  document. Also hosts the catalog service (brands, types, tools).

OPERATIONS:
  ComputeAgreement:  price a rental window for a tool, nothing persisted
  Quote:             validate a request, then ComputeAgreement
  Checkout:          validate, persist a Rental, return its agreement
  Agreement:         recompute the agreement of a stored rental
  ToolRentals:       recompute the agreements of a tool's rentals
  RenderDocument:    agreement text of a stored rental

ERRORS:
  ErrToolNotFound / ErrRentalNotFound when a referenced record is
  missing; *ValidationError for bad requests. The caller maps them.

CONCURRENCY:
  Service holds no mutable state. Concurrency control is the store's job.

SEE ALSO:
  - pricing/agreement.go: The calculation pipeline
  - catalog.go: Brand, type and tool management
  - store/sqlite/sqlite.go: Production store
*/
package rental

import (
	"context"
	"fmt"
	"log"

	"github.com/warp/rental-engine/pricing"
)

// Service computes rental agreements.
type Service struct {
	store Store
}

// NewService creates a service backed by store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ComputeAgreement prices dayCount days after checkout for toolID.
// Other inputs are assumed valid; see CheckoutRequest.Validate.
func (s *Service) ComputeAgreement(ctx context.Context, toolID int64, checkout pricing.Date, dayCount, discountPercent int) (pricing.Agreement, error) {
	if dayCount < MinDayCount || dayCount > MaxDayCount {
		v := &ValidationError{}
		v.add("rental day count must be between %d and %d", MinDayCount, MaxDayCount)
		return pricing.Agreement{}, v
	}
	tool, err := s.lookupTool(ctx, toolID)
	if err != nil {
		return pricing.Agreement{}, err
	}
	return pricing.Calculate(termsFor(tool, 0, checkout, dayCount, discountPercent)), nil
}

// Quote validates req and prices it without persisting anything.
func (s *Service) Quote(ctx context.Context, req CheckoutRequest) (pricing.Agreement, error) {
	if err := req.Validate(); err != nil {
		return pricing.Agreement{}, err
	}
	checkout, _ := pricing.ParseDate(req.CheckoutDate)
	return s.ComputeAgreement(ctx, req.ToolID, checkout, req.DayCount, req.DiscountPercent)
}

// Checkout validates req, records the rental and returns its agreement.
func (s *Service) Checkout(ctx context.Context, req CheckoutRequest) (pricing.Agreement, error) {
	if err := req.Validate(); err != nil {
		return pricing.Agreement{}, err
	}
	checkout, _ := pricing.ParseDate(req.CheckoutDate)

	tool, err := s.lookupTool(ctx, req.ToolID)
	if err != nil {
		return pricing.Agreement{}, err
	}

	r, err := s.store.CreateRental(ctx, Rental{
		ToolID:          tool.ID,
		CheckoutDate:    checkout,
		DayCount:        req.DayCount,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		return pricing.Agreement{}, fmt.Errorf("failed to save rental: %w", err)
	}

	a := pricing.Calculate(termsFor(tool, r.ID, r.CheckoutDate, r.DayCount, r.DiscountPercent))
	log.Printf("[Checkout] rental %d: tool %s, %d days from %s, %d charge days, final %s",
		r.ID, tool.Code, r.DayCount, r.CheckoutDate, a.ChargeDays, pricing.FormatCurrency(a.FinalCharge))
	return a, nil
}

// Agreement recomputes the agreement for a stored rental.
func (s *Service) Agreement(ctx context.Context, rentalID int64) (pricing.Agreement, error) {
	r, err := s.store.GetRental(ctx, rentalID)
	if err != nil {
		return pricing.Agreement{}, fmt.Errorf("failed to load rental %d: %w", rentalID, err)
	}
	if r == nil {
		return pricing.Agreement{}, fmt.Errorf("rental %d: %w", rentalID, ErrRentalNotFound)
	}

	tool, err := s.lookupTool(ctx, r.ToolID)
	if err != nil {
		return pricing.Agreement{}, err
	}
	return pricing.Calculate(termsFor(tool, r.ID, r.CheckoutDate, r.DayCount, r.DiscountPercent)), nil
}

// ToolRentals recomputes the agreements of every rental of toolID, oldest
// first.
func (s *Service) ToolRentals(ctx context.Context, toolID int64) ([]pricing.Agreement, error) {
	tool, err := s.lookupTool(ctx, toolID)
	if err != nil {
		return nil, err
	}

	rentals, err := s.store.ListRentalsByTool(ctx, tool.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rentals of tool %d: %w", toolID, err)
	}

	agreements := make([]pricing.Agreement, len(rentals))
	for i, r := range rentals {
		agreements[i] = pricing.Calculate(termsFor(tool, r.ID, r.CheckoutDate, r.DayCount, r.DiscountPercent))
	}
	return agreements, nil
}

// RenderDocument returns the printed agreement for a stored rental.
func (s *Service) RenderDocument(ctx context.Context, rentalID int64) (string, error) {
	a, err := s.Agreement(ctx, rentalID)
	if err != nil {
		return "", err
	}
	return pricing.Render(a), nil
}

func (s *Service) lookupTool(ctx context.Context, id int64) (*Tool, error) {
	tool, err := s.store.GetTool(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool %d: %w", id, err)
	}
	if tool == nil {
		return nil, fmt.Errorf("tool %d: %w", id, ErrToolNotFound)
	}
	return tool, nil
}

func termsFor(tool *Tool, rentalID int64, checkout pricing.Date, dayCount, discountPercent int) pricing.Terms {
	return pricing.Terms{
		RentalID:        rentalID,
		ToolCode:        tool.Code,
		ToolType:        tool.TypeName,
		ToolBrand:       tool.BrandName,
		Policy:          tool.Policy,
		CheckoutDate:    checkout,
		DayCount:        dayCount,
		DiscountPercent: discountPercent,
	}
}
