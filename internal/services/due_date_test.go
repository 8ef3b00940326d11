package services

import (
	"testing"
	"time"
)

func TestNextDueDate(t *testing.T) {
	at := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
	}
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name   string
		from   time.Time
		dueDay int
		want   time.Time
	}{
		{"later this month", at(2025, time.March, 10), 15, date(2025, time.March, 15)},
		{"due today counts", at(2025, time.March, 15), 15, date(2025, time.March, 15)},
		{"already passed rolls over", at(2025, time.March, 20), 3, date(2025, time.April, 3)},
		{"clamped in thirty day month", at(2025, time.April, 1), 31, date(2025, time.April, 30)},
		{"clamped in february", at(2025, time.February, 1), 30, date(2025, time.February, 28)},
		{"clamped in leap february", at(2024, time.February, 1), 30, date(2024, time.February, 29)},
		{"due on last day of month", at(2025, time.March, 31), 31, date(2025, time.March, 31)},
		{"rollover clamps next month", at(2025, time.January, 31), 30, date(2025, time.February, 28)},
		{"december rolls into january", at(2025, time.December, 20), 5, date(2026, time.January, 5)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NextDueDate(tc.from, tc.dueDay)
			if !got.Equal(tc.want) {
				t.Fatalf("NextDueDate(%v, %d) = %v, want %v", tc.from, tc.dueDay, got, tc.want)
			}
		})
	}
}
