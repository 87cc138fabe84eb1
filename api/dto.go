/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the rental and pricing model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

MONEY:
  Amounts are rendered as strings with exactly two decimals ("3.58") so
  clients never see binary floating-point values. Incoming daily charges
  accept either a JSON number or a string (shopspring/decimal).

DATES:
  All dates are YYYY-MM-DD.

SEE ALSO:
  - handlers.go: Uses these types
  - pricing/agreement.go: Agreement
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/rental-engine/pricing"
	"github.com/warp/rental-engine/rental"
)

// =============================================================================
// CATALOG
// =============================================================================

// BrandDTO represents a tool brand.
type BrandDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateBrandRequest is the request to create a brand.
type CreateBrandRequest struct {
	Name string `json:"name"`
}

// ToolTypeDTO represents a tool type and its charge policy.
type ToolTypeDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DailyCharge   string `json:"daily_charge"`
	WeekdayCharge bool   `json:"weekday_charge"`
	WeekendCharge bool   `json:"weekend_charge"`
	HolidayCharge bool   `json:"holiday_charge"`
}

// CreateToolTypeRequest is the request to create a tool type.
type CreateToolTypeRequest struct {
	Name          string          `json:"name"`
	DailyCharge   decimal.Decimal `json:"daily_charge"`
	WeekdayCharge bool            `json:"weekday_charge"`
	WeekendCharge bool            `json:"weekend_charge"`
	HolidayCharge bool            `json:"holiday_charge"`
}

// ToolDTO represents a rentable tool.
type ToolDTO struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	BrandID     int64  `json:"tool_brand_id"`
	Brand       string `json:"tool_brand"`
	TypeID      int64  `json:"tool_type_id"`
	Type        string `json:"tool_type"`
	DailyCharge string `json:"daily_charge"`
}

// CreateToolRequest is the request to create a tool.
type CreateToolRequest struct {
	Code    string `json:"code"`
	BrandID int64  `json:"tool_brand_id"`
	TypeID  int64  `json:"tool_type_id"`
}

// =============================================================================
// RENTALS
// =============================================================================

// CheckoutRequestDTO is the body of a checkout or quote.
type CheckoutRequestDTO struct {
	ToolID          int64  `json:"tool_id"`
	CheckoutDate    string `json:"checkout_date"`
	DayCount        int    `json:"day_count"`
	DiscountPercent int    `json:"discount_percent"`
}

// AgreementDTO is a computed rental agreement.
type AgreementDTO struct {
	RentalID          int64  `json:"rental_id,omitempty"`
	ToolCode          string `json:"tool_code"`
	ToolType          string `json:"tool_type"`
	ToolBrand         string `json:"tool_brand"`
	RentalDays        int    `json:"rental_days"`
	CheckoutDate      string `json:"checkout_date"`
	DueDate           string `json:"due_date"`
	DailyRentalCharge string `json:"daily_rental_charge"`
	Weekdays          int    `json:"weekdays"`
	Weekends          int    `json:"weekends"`
	Holidays          int    `json:"holidays"`
	ChargeDays        int    `json:"charge_days"`
	PreDiscountCharge string `json:"pre_discount_charge"`
	DiscountPercent   int    `json:"discount_percent"`
	DiscountAmount    string `json:"discount_amount"`
	FinalCharge       string `json:"final_charge"`
}

// HealthDTO is the liveness response.
type HealthDTO struct {
	Status string `json:"status"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func toBrandDTO(b rental.Brand) BrandDTO {
	return BrandDTO{ID: b.ID, Name: b.Name}
}

func toToolTypeDTO(tt rental.ToolType) ToolTypeDTO {
	return ToolTypeDTO{
		ID:            tt.ID,
		Name:          tt.Name,
		DailyCharge:   money(tt.Policy.DailyRate),
		WeekdayCharge: tt.Policy.ChargeWeekday,
		WeekendCharge: tt.Policy.ChargeWeekend,
		HolidayCharge: tt.Policy.ChargeHoliday,
	}
}

func toToolDTO(t rental.Tool) ToolDTO {
	return ToolDTO{
		ID:          t.ID,
		Code:        t.Code,
		BrandID:     t.BrandID,
		Brand:       t.BrandName,
		TypeID:      t.TypeID,
		Type:        t.TypeName,
		DailyCharge: money(t.Policy.DailyRate),
	}
}

func toAgreementDTO(a pricing.Agreement) AgreementDTO {
	return AgreementDTO{
		RentalID:          a.RentalID,
		ToolCode:          a.ToolCode,
		ToolType:          a.ToolType,
		ToolBrand:         a.ToolBrand,
		RentalDays:        a.RentalDays,
		CheckoutDate:      a.CheckoutDate.String(),
		DueDate:           a.DueDate.String(),
		DailyRentalCharge: money(a.DailyRentalCharge),
		Weekdays:          a.Breakdown.Weekdays(),
		Weekends:          a.Breakdown.Weekends(),
		Holidays:          a.Breakdown.Holidays(),
		ChargeDays:        a.ChargeDays,
		PreDiscountCharge: money(a.PreDiscountCharge),
		DiscountPercent:   a.DiscountPercent,
		DiscountAmount:    money(a.DiscountAmount),
		FinalCharge:       money(a.FinalCharge),
	}
}

func (r CheckoutRequestDTO) toRequest() rental.CheckoutRequest {
	return rental.CheckoutRequest{
		ToolID:          r.ToolID,
		CheckoutDate:    r.CheckoutDate,
		DayCount:        r.DayCount,
		DiscountPercent: r.DiscountPercent,
	}
}
