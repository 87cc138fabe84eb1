/*
calendar.go - Day-by-day classification of a rental window

PURPOSE:
  Assigns every day of a rental window exactly one DayKind (weekday,
  weekend or holiday) so that tool-type charge flags can be applied.

WINDOW:
  The window is the dayCount days strictly after the checkout date.
  The checkout day itself is never classified.

HOLIDAYS:
  Labor Day:         first Monday of September, always a holiday.
  Independence Day:  July 4.
    - on a weekday:  holiday.
    - on Saturday:   weekend; observed on the most recent earlier weekday
                     in the window (normally the Friday before).
    - on Sunday:     weekend; observed on the next ordinary weekday
                     (normally the Monday after).

  A Saturday July 4 with no earlier weekday in the window loses its
  observed day. The window is never extended backwards.

ALGORITHM:
  ClassifyDays materializes the window:
    1. Naive pass: classify each day on its own.
    2. Reconciliation pass: walk the sequence and move the July 4
       observance onto the neighbouring weekday.
  Classify computes the same counts in one pass with constant memory.
  A Saturday observance only needs to know that some earlier weekday is
  still counted as a Weekday, not which one.

SEE ALSO:
  - charge.go: Applies charge flags to a Breakdown
  - agreement.go: Drives the full calculation
*/
package pricing

import "time"

// DayKind is the billing category of a single rental day.
type DayKind int

const (
	Weekday DayKind = iota
	Weekend
	Holiday

	dayKindCount
)

// DayKinds lists every category, in index order.
var DayKinds = [dayKindCount]DayKind{Weekday, Weekend, Holiday}

func (k DayKind) String() string {
	switch k {
	case Weekday:
		return "weekday"
	case Weekend:
		return "weekend"
	case Holiday:
		return "holiday"
	default:
		return "unknown"
	}
}

// Breakdown holds day counts indexed by DayKind.
type Breakdown [dayKindCount]int

func (b Breakdown) Count(k DayKind) int { return b[k] }
func (b Breakdown) Weekdays() int       { return b[Weekday] }
func (b Breakdown) Weekends() int       { return b[Weekend] }
func (b Breakdown) Holidays() int       { return b[Holiday] }

// Total is the number of classified days.
func (b Breakdown) Total() int {
	total := 0
	for _, n := range b {
		total += n
	}
	return total
}

// Classify returns the day counts for the window after checkout. It agrees
// with counting ClassifyDays but never allocates the window.
func Classify(checkout Date, dayCount int) Breakdown {
	var b Breakdown
	pending := false
	for i := 1; i <= dayCount; i++ {
		d := checkout.AddDays(i)
		k := naiveKind(d)

		if IsIndependenceDay(d) {
			switch d.Weekday() {
			case time.Saturday:
				if b[Weekday] > 0 {
					b[Weekday]--
					b[Holiday]++
				}
			case time.Sunday:
				pending = true
			}
		} else if pending && k == Weekday {
			k = Holiday
			pending = false
		}
		b[k]++
	}
	return b
}

// ClassifyDays returns one DayKind per day in [checkout+1, checkout+dayCount].
// Index i holds the classification of checkout+i+1.
func ClassifyDays(checkout Date, dayCount int) []DayKind {
	if dayCount <= 0 {
		return nil
	}
	days := make([]DayKind, dayCount)
	for i := range days {
		days[i] = naiveKind(checkout.AddDays(i + 1))
	}
	reconcileObserved(checkout, days)
	return days
}

// naiveKind classifies a day without looking at its neighbours.
func naiveKind(d Date) DayKind {
	switch {
	case IsLaborDay(d):
		return Holiday
	case IsIndependenceDay(d) && !d.IsWeekend():
		return Holiday
	case d.IsWeekend():
		return Weekend
	default:
		return Weekday
	}
}

// reconcileObserved moves a weekend Independence Day onto the adjacent
// weekday. days must come from naiveKind and is updated in place.
func reconcileObserved(checkout Date, days []DayKind) {
	pending := false
	for i := range days {
		d := checkout.AddDays(i + 1)

		if IsIndependenceDay(d) {
			switch d.Weekday() {
			case time.Saturday:
				if j := lastWeekdayBefore(days, i); j >= 0 {
					days[j] = Holiday
				}
			case time.Sunday:
				pending = true
			}
			continue
		}

		if pending && days[i] == Weekday {
			days[i] = Holiday
			pending = false
		}
	}
}

// lastWeekdayBefore returns the index of the latest Weekday in days[:i], or -1.
func lastWeekdayBefore(days []DayKind, i int) int {
	for j := i - 1; j >= 0; j-- {
		if days[j] == Weekday {
			return j
		}
	}
	return -1
}
