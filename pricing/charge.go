package pricing

import "github.com/shopspring/decimal"

// ChargePolicy is the daily rate and charge applicability of a tool type.
type ChargePolicy struct {
	DailyRate     decimal.Decimal
	ChargeWeekday bool
	ChargeWeekend bool
	ChargeHoliday bool
}

// Charges reports whether days of kind k are billable under p.
func (p ChargePolicy) Charges(k DayKind) bool {
	return p.flags()[k]
}

func (p ChargePolicy) flags() [dayKindCount]bool {
	return [dayKindCount]bool{
		Weekday: p.ChargeWeekday,
		Weekend: p.ChargeWeekend,
		Holiday: p.ChargeHoliday,
	}
}

// ChargeDays returns the number of billable days in b under p.
func ChargeDays(b Breakdown, p ChargePolicy) int {
	flags := p.flags()
	days := 0
	for _, k := range DayKinds {
		if flags[k] {
			days += b[k]
		}
	}
	return days
}
