package rental

import (
	"regexp"
	"unicode/utf8"

	"github.com/warp/rental-engine/pricing"
)

// Input limits enforced before anything reaches the pricing core.
const (
	MinDayCount        = 1
	MaxDayCount        = 3650 // ten years
	MinDiscountPercent = 0
	MaxDiscountPercent = 100
	MinNameLength      = 2
	MaxNameLength      = 30
	minCheckoutYear    = 1900
	maxCheckoutYear    = 2099
)

var toolCodePattern = regexp.MustCompile(`^[A-Z]{4,10}$`)

// Validate checks r and reports every violation at once.
func (r CheckoutRequest) Validate() error {
	v := &ValidationError{}

	if r.ToolID < 1 {
		v.add("tool id must be a positive number")
	}
	if r.DayCount < MinDayCount {
		v.add("rental day count must be 1 or greater")
	} else if r.DayCount > MaxDayCount {
		v.add("rental day count must be %d or less", MaxDayCount)
	}
	if r.DiscountPercent < MinDiscountPercent || r.DiscountPercent > MaxDiscountPercent {
		v.add("discount percent must be between %d and %d", MinDiscountPercent, MaxDiscountPercent)
	}
	if r.CheckoutDate == "" {
		v.add("checkout date is required")
	} else if d, err := pricing.ParseDate(r.CheckoutDate); err != nil {
		v.add("checkout date must be a valid date in YYYY-MM-DD format")
	} else if d.Year() < minCheckoutYear || d.Year() > maxCheckoutYear {
		v.add("checkout date year must be between %d and %d", minCheckoutYear, maxCheckoutYear)
	}

	return v.orNil()
}

func validateName(v *ValidationError, field, name string) {
	n := utf8.RuneCountInString(name)
	if n < MinNameLength || n > MaxNameLength {
		v.add("%s must be between %d and %d characters", field, MinNameLength, MaxNameLength)
	}
}

func validateToolCode(v *ValidationError, code string) {
	if !toolCodePattern.MatchString(code) {
		v.add("tool code must be 4 to 10 uppercase letters")
	}
}
