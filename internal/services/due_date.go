package services

import (
	"time"

	"bilancio/internal/core"
)

// NextDueDate returns the next calendar date a monthly bill with the
// given due day falls on, counting from the day of `from` inclusive.
// Days past the end of a short month clamp to its last day, so a bill
// due on the 31st is due on April 30th and on February 28th (29th in
// leap years).
func NextDueDate(from time.Time, dueDay int) time.Time {
	year, month, today := from.Date()

	day := dueDay
	if last := core.DaysIn(year, month); day > last {
		day = last
	}
	if day >= today {
		return time.Date(year, month, day, 0, 0, 0, 0, from.Location())
	}

	// Already passed this month, roll into the next one.
	next := time.Date(year, month, 1, 0, 0, 0, 0, from.Location()).AddDate(0, 1, 0)
	year, month, _ = next.Date()
	day = dueDay
	if last := core.DaysIn(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, from.Location())
}
