package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileObserved(t *testing.T) {
	const (
		wd = Weekday
		we = Weekend
		ho = Holiday
	)

	tests := []struct {
		name     string
		checkout string
		naive    []DayKind
		want     []DayKind
	}{
		{
			// Fri 07/03, Sat 07/04, Sun 07/05
			name:     "saturday observed on friday",
			checkout: "2020-07-02",
			naive:    []DayKind{wd, we, we},
			want:     []DayKind{ho, we, we},
		},
		{
			// Thu 07/02 weekday, Fri 07/03 already a holiday: the
			// observance moves to the latest remaining weekday
			name:     "saturday skips days that are not weekdays",
			checkout: "2020-07-01",
			naive:    []DayKind{wd, ho, we},
			want:     []DayKind{ho, ho, we},
		},
		{
			name:     "saturday with nothing earlier is dropped",
			checkout: "2020-07-03",
			naive:    []DayKind{we, we},
			want:     []DayKind{we, we},
		},
		{
			name:     "saturday with only a holiday earlier is dropped",
			checkout: "2020-07-02",
			naive:    []DayKind{ho, we},
			want:     []DayKind{ho, we},
		},
		{
			// Sat 07/03, Sun 07/04, Mon 07/05
			name:     "sunday observed on monday",
			checkout: "2021-07-02",
			naive:    []DayKind{we, we, wd},
			want:     []DayKind{we, we, ho},
		},
		{
			// Mon 07/05 handed in as a holiday: Tue 07/06 takes the observance
			name:     "sunday passes over a holiday",
			checkout: "2021-07-02",
			naive:    []DayKind{we, we, ho, wd, wd},
			want:     []DayKind{we, we, ho, ho, wd},
		},
		{
			name:     "sunday observance lost at window end",
			checkout: "2021-07-02",
			naive:    []DayKind{we, we},
			want:     []DayKind{we, we},
		},
		{
			name:     "no independence day leaves sequence untouched",
			checkout: "2024-03-03",
			naive:    []DayKind{wd, wd, wd, wd, wd, we, we},
			want:     []DayKind{wd, wd, wd, wd, wd, we, we},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			days := append([]DayKind(nil), tt.naive...)
			reconcileObserved(MustParseDate(tt.checkout), days)
			assert.Equal(t, tt.want, days)
		})
	}
}

func TestLastWeekdayBefore(t *testing.T) {
	days := []DayKind{Weekday, Holiday, Weekend, Weekday, Weekend}

	assert.Equal(t, -1, lastWeekdayBefore(days, 0))
	assert.Equal(t, 0, lastWeekdayBefore(days, 1))
	assert.Equal(t, 0, lastWeekdayBefore(days, 3))
	assert.Equal(t, 3, lastWeekdayBefore(days, 4))
	assert.Equal(t, -1, lastWeekdayBefore([]DayKind{Weekend, Holiday}, 2))
}
