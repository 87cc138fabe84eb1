package pricing

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Calendar day (no time of day, always UTC)
// =============================================================================

// Date is a calendar day. The zero value is not a valid rental date.
type Date struct {
	Time time.Time
}

const (
	// ISODateLayout is the wire format for dates (yyyy-MM-dd).
	ISODateLayout = "2006-01-02"
	// AgreementDateLayout is the layout used in the rendered agreement (MM/dd/yy).
	AgreementDateLayout = "01/02/06"
)

// NewDate builds a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(ISODateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD): %w", s, err)
	}
	return Date{Time: t}, nil
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{Time: d.Time.AddDate(0, 0, n)} }

// Properties
func (d Date) Year() int             { return d.Time.Year() }
func (d Date) Month() time.Month     { return d.Time.Month() }
func (d Date) Day() int              { return d.Time.Day() }
func (d Date) Weekday() time.Weekday { return d.Time.Weekday() }
func (d Date) IsZero() bool          { return d.Time.IsZero() }
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// String returns the ISO form.
func (d Date) String() string { return d.Time.Format(ISODateLayout) }

// AgreementString returns the MM/dd/yy form used on the printed agreement.
func (d Date) AgreementString() string { return d.Time.Format(AgreementDateLayout) }

// =============================================================================
// HOLIDAYS - Fixed rules recognized by the rental calendar
// =============================================================================

// IsLaborDay reports whether d is the first Monday of September.
func IsLaborDay(d Date) bool {
	return d.Month() == time.September && d.Day() < 8 && d.Weekday() == time.Monday
}

// IsIndependenceDay reports whether d is July 4.
func IsIndependenceDay(d Date) bool {
	return d.Month() == time.July && d.Day() == 4
}
