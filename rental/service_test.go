package rental_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rental-engine/pricing"
	"github.com/warp/rental-engine/rental"
	"github.com/warp/rental-engine/rental/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func standardSeed() rental.CatalogSeed {
	return rental.CatalogSeed{
		Brands: []string{"Stihl", "Werner", "DeWalt", "Ridgid"},
		ToolTypes: []rental.SeedToolType{
			{Name: "Ladder", DailyCharge: "1.99", WeekdayCharge: true, WeekendCharge: true, HolidayCharge: false},
			{Name: "Chainsaw", DailyCharge: "1.49", WeekdayCharge: true, WeekendCharge: false, HolidayCharge: true},
			{Name: "Jackhammer", DailyCharge: "2.99", WeekdayCharge: true, WeekendCharge: false, HolidayCharge: false},
		},
		Tools: []rental.SeedTool{
			{Code: "CHNS", Brand: "Stihl", Type: "Chainsaw"},
			{Code: "LADW", Brand: "Werner", Type: "Ladder"},
			{Code: "JAKD", Brand: "DeWalt", Type: "Jackhammer"},
			{Code: "JAKR", Brand: "Ridgid", Type: "Jackhammer"},
		},
	}
}

func newTestService(t *testing.T) (*rental.Service, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	require.NoError(t, rental.NewCatalog(mem).Seed(context.Background(), standardSeed()))
	return rental.NewService(mem), mem
}

func toolID(t *testing.T, mem *store.Memory, code string) int64 {
	t.Helper()
	tool, err := mem.FindToolByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, tool, "tool %s not seeded", code)
	return tool.ID
}

// =============================================================================
// CHECKOUT
// =============================================================================

func TestCheckout_Scenarios(t *testing.T) {
	tests := []struct {
		code     string
		checkout string
		days     int
		discount int
		due      string
		charge   int
		pre      string
		disc     string
		final    string
	}{
		{"LADW", "2020-07-02", 3, 10, "2020-07-05", 2, "3.98", "0.40", "3.58"},
		{"CHNS", "2015-07-02", 5, 25, "2015-07-07", 3, "4.47", "1.12", "3.35"},
		{"JAKD", "2015-09-03", 6, 0, "2015-09-09", 3, "8.97", "0.00", "8.97"},
		{"JAKR", "2015-07-02", 9, 0, "2015-07-11", 5, "14.95", "0.00", "14.95"},
		{"JAKR", "2020-07-02", 9, 50, "2020-07-11", 5, "14.95", "7.48", "7.47"},
	}

	for _, tt := range tests {
		t.Run(tt.code+"_"+tt.checkout, func(t *testing.T) {
			svc, mem := newTestService(t)
			ctx := context.Background()

			a, err := svc.Checkout(ctx, rental.CheckoutRequest{
				ToolID:          toolID(t, mem, tt.code),
				CheckoutDate:    tt.checkout,
				DayCount:        tt.days,
				DiscountPercent: tt.discount,
			})
			require.NoError(t, err)

			assert.NotZero(t, a.RentalID)
			assert.Equal(t, tt.code, a.ToolCode)
			assert.Equal(t, tt.due, a.DueDate.String())
			assert.Equal(t, tt.charge, a.ChargeDays)
			assert.Equal(t, tt.pre, a.PreDiscountCharge.StringFixed(2))
			assert.Equal(t, tt.disc, a.DiscountAmount.StringFixed(2))
			assert.Equal(t, tt.final, a.FinalCharge.StringFixed(2))

			// The rental is persisted and recomputes to the same agreement
			again, err := svc.Agreement(ctx, a.RentalID)
			require.NoError(t, err)
			assert.Equal(t, a.FinalCharge.String(), again.FinalCharge.String())
			assert.Equal(t, a.ChargeDays, again.ChargeDays)
		})
	}
}

func TestCheckout_InvalidRequest(t *testing.T) {
	// GIVEN: A discount above 100%
	// WHEN: Checking out
	// THEN: Validation error, nothing persisted
	svc, mem := newTestService(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, rental.CheckoutRequest{
		ToolID:          toolID(t, mem, "JAKR"),
		CheckoutDate:    "2015-09-03",
		DayCount:        5,
		DiscountPercent: 101,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, rental.ErrInvalidRequest)
	var vErr *rental.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Problems, "discount percent must be between 0 and 100")

	r, err := mem.GetRental(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestCheckout_UnknownTool(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Checkout(context.Background(), rental.CheckoutRequest{
		ToolID:          999,
		CheckoutDate:    "2020-07-02",
		DayCount:        3,
		DiscountPercent: 0,
	})

	assert.ErrorIs(t, err, rental.ErrToolNotFound)
	assert.True(t, rental.IsNotFound(err))
}

// =============================================================================
// COMPUTE / QUOTE
// =============================================================================

func TestComputeAgreement_DoesNotPersist(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	a, err := svc.ComputeAgreement(ctx, toolID(t, mem, "LADW"), pricing.MustParseDate("2020-07-02"), 3, 10)
	require.NoError(t, err)

	assert.Zero(t, a.RentalID)
	assert.Equal(t, "3.58", a.FinalCharge.StringFixed(2))
	assert.Equal(t, "Werner", a.ToolBrand)
	assert.Equal(t, "Ladder", a.ToolType)
}

func TestComputeAgreement_UnknownTool(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ComputeAgreement(context.Background(), 12345, pricing.MustParseDate("2020-07-02"), 3, 10)
	assert.ErrorIs(t, err, rental.ErrToolNotFound)
}

func TestComputeAgreement_RejectsDayCountOutOfRange(t *testing.T) {
	svc, mem := newTestService(t)
	id := toolID(t, mem, "LADW")
	checkout := pricing.MustParseDate("2020-07-02")

	for _, days := range []int{0, rental.MaxDayCount + 1, 1 << 40} {
		_, err := svc.ComputeAgreement(context.Background(), id, checkout, days, 0)
		assert.ErrorIs(t, err, rental.ErrInvalidRequest, "%d days", days)
	}

	a, err := svc.ComputeAgreement(context.Background(), id, checkout, rental.MaxDayCount, 0)
	require.NoError(t, err)
	assert.Equal(t, rental.MaxDayCount, a.Breakdown.Total())
}

func TestQuote_ValidatesFirst(t *testing.T) {
	svc, _ := newTestService(t)

	// Unknown tool AND bad day count: validation wins, no lookup happens
	_, err := svc.Quote(context.Background(), rental.CheckoutRequest{
		ToolID:       12345,
		CheckoutDate: "2020-07-02",
		DayCount:     0,
	})
	assert.ErrorIs(t, err, rental.ErrInvalidRequest)
	assert.False(t, rental.IsNotFound(err))
}

func TestQuote_MatchesCheckout(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	req := rental.CheckoutRequest{
		ToolID:          toolID(t, mem, "CHNS"),
		CheckoutDate:    "2015-07-02",
		DayCount:        5,
		DiscountPercent: 25,
	}

	quote, err := svc.Quote(ctx, req)
	require.NoError(t, err)
	checkout, err := svc.Checkout(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, quote.FinalCharge.String(), checkout.FinalCharge.String())
	assert.Equal(t, quote.Breakdown, checkout.Breakdown)
}

// =============================================================================
// DOCUMENT
// =============================================================================

func TestRenderDocument_Ladder(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	a, err := svc.Checkout(ctx, rental.CheckoutRequest{
		ToolID:          toolID(t, mem, "LADW"),
		CheckoutDate:    "2020-07-02",
		DayCount:        3,
		DiscountPercent: 10,
	})
	require.NoError(t, err)

	doc, err := svc.RenderDocument(ctx, a.RentalID)
	require.NoError(t, err)

	want := `Rental Agreement

Tool code: LADW
Tool type: Ladder
Tool brand: Werner
Check out date: 07/02/20
Due date: 07/05/20
Daily rental charge: $1.99
Charge days: 2
Pre-discount charge: $3.98
Discount percent: 10%
Discount amount: $0.40
Final charge: $3.58`
	assert.Equal(t, want, doc)
}

func TestRenderDocument_UnknownRental(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.RenderDocument(context.Background(), 404)
	assert.ErrorIs(t, err, rental.ErrRentalNotFound)
}

// retiredToolStore hides one tool while keeping its rentals.
type retiredToolStore struct {
	*store.Memory
	retired int64
}

func (s *retiredToolStore) GetTool(ctx context.Context, id int64) (*rental.Tool, error) {
	if id == s.retired {
		return nil, nil
	}
	return s.Memory.GetTool(ctx, id)
}

func TestAgreement_ToolRemovedAfterCheckout(t *testing.T) {
	_, mem := newTestService(t)
	ctx := context.Background()
	id := toolID(t, mem, "JAKD")

	a, err := rental.NewService(mem).Checkout(ctx, rental.CheckoutRequest{ToolID: id, CheckoutDate: "2015-09-03", DayCount: 6})
	require.NoError(t, err)

	svc := rental.NewService(&retiredToolStore{Memory: mem, retired: id})
	_, err = svc.Agreement(ctx, a.RentalID)
	assert.ErrorIs(t, err, rental.ErrToolNotFound)
}

// =============================================================================
// TOOL RENTALS
// =============================================================================

func TestToolRentals(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	jakr := toolID(t, mem, "JAKR")

	// GIVEN: Two JAKR rentals and one LADW rental
	first, err := svc.Checkout(ctx, rental.CheckoutRequest{ToolID: jakr, CheckoutDate: "2015-07-02", DayCount: 9})
	require.NoError(t, err)
	_, err = svc.Checkout(ctx, rental.CheckoutRequest{ToolID: toolID(t, mem, "LADW"), CheckoutDate: "2020-07-02", DayCount: 3})
	require.NoError(t, err)
	second, err := svc.Checkout(ctx, rental.CheckoutRequest{ToolID: jakr, CheckoutDate: "2020-07-02", DayCount: 9, DiscountPercent: 50})
	require.NoError(t, err)

	// WHEN: Listing JAKR rentals
	agreements, err := svc.ToolRentals(ctx, jakr)
	require.NoError(t, err)

	// THEN: Only JAKR, oldest first, recomputed
	require.Len(t, agreements, 2)
	assert.Equal(t, first.RentalID, agreements[0].RentalID)
	assert.Equal(t, second.RentalID, agreements[1].RentalID)
	assert.Equal(t, "14.95", agreements[0].FinalCharge.StringFixed(2))
	assert.Equal(t, "7.47", agreements[1].FinalCharge.StringFixed(2))
}

func TestToolRentals_UnknownTool(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ToolRentals(context.Background(), 999)
	assert.ErrorIs(t, err, rental.ErrToolNotFound)
}

func TestToolRentals_NoneYet(t *testing.T) {
	svc, mem := newTestService(t)

	agreements, err := svc.ToolRentals(context.Background(), toolID(t, mem, "CHNS"))
	require.NoError(t, err)
	assert.Empty(t, agreements)
}

// =============================================================================
// CONCURRENCY
// =============================================================================

func TestCheckout_Concurrent(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()
	id := toolID(t, mem, "LADW")

	const n = 20
	var wg sync.WaitGroup
	ids := make([]int64, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := svc.Checkout(ctx, rental.CheckoutRequest{ToolID: id, CheckoutDate: "2020-07-02", DayCount: 3, DiscountPercent: 10})
			ids[i], errs[i] = a.RentalID, err
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.False(t, seen[ids[i]], "rental id %d reused", ids[i])
		seen[ids[i]] = true
	}
	assert.Len(t, seen, n)
}
