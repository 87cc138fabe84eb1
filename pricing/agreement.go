/*
Package pricing computes tool rental charges and renders rental agreements.

PURPOSE:
  Pure calculation core of the rental engine. Given a tool type's charge
  policy, a checkout date, a rental length and a discount, it works out
  the billable days and the money owed.

PIPELINE:
  1. ClassifyDays / Classify:  weekday, weekend or holiday per rental day
  2. ChargeDays:               apply the tool type's three charge flags
  3. PreDiscountCharge,
     DiscountAmount,
     FinalCharge:              cent-rounded money, each from rounded inputs
  4. Render:                   fixed-layout agreement text

CONCURRENCY:
  Nothing in this package holds state. All functions are safe to call
  from any number of goroutines.

INPUT CONTRACT:
  dayCount >= 1, 0 <= discountPercent <= 100, dailyRate >= 0.
  Callers validate before calling; this package does not re-check.

SEE ALSO:
  - calendar.go: Day classification and holiday observance
  - render.go: Agreement document layout
  - rental/service.go: Orchestration around the store
*/
package pricing

import "github.com/shopspring/decimal"

// Terms are the inputs of one agreement calculation.
type Terms struct {
	RentalID        int64
	ToolCode        string
	ToolType        string
	ToolBrand       string
	Policy          ChargePolicy
	CheckoutDate    Date
	DayCount        int
	DiscountPercent int
}

// Agreement is the computed result for one rental. It is a value: it holds
// no reference to store state and is never modified after Calculate.
type Agreement struct {
	RentalID          int64
	ToolCode          string
	ToolType          string
	ToolBrand         string
	RentalDays        int
	CheckoutDate      Date
	DueDate           Date
	DailyRentalCharge decimal.Decimal
	Breakdown         Breakdown
	ChargeDays        int
	PreDiscountCharge decimal.Decimal
	DiscountPercent   int
	DiscountAmount    decimal.Decimal
	FinalCharge       decimal.Decimal
}

// DueDate is checkout + dayCount days.
func DueDate(checkout Date, dayCount int) Date {
	return checkout.AddDays(dayCount)
}

// Calculate runs the full pricing pipeline for t.
func Calculate(t Terms) Agreement {
	breakdown := Classify(t.CheckoutDate, t.DayCount)
	chargeDays := ChargeDays(breakdown, t.Policy)
	preDiscount := PreDiscountCharge(chargeDays, t.Policy.DailyRate)
	discount := DiscountAmount(preDiscount, t.DiscountPercent)

	return Agreement{
		RentalID:          t.RentalID,
		ToolCode:          t.ToolCode,
		ToolType:          t.ToolType,
		ToolBrand:         t.ToolBrand,
		RentalDays:        breakdown.Total(),
		CheckoutDate:      t.CheckoutDate,
		DueDate:           DueDate(t.CheckoutDate, t.DayCount),
		DailyRentalCharge: t.Policy.DailyRate,
		Breakdown:         breakdown,
		ChargeDays:        chargeDays,
		PreDiscountCharge: preDiscount,
		DiscountPercent:   t.DiscountPercent,
		DiscountAmount:    discount,
		FinalCharge:       FinalCharge(preDiscount, discount),
	}
}
