// Package schedule computes next-inspection due dates and classifies how
// urgent a due date is relative to the current day.
//
// All functions are pure: the current time is always passed in explicitly.
package schedule

import "time"

// InspectionInterval is the number of calendar months between inspections.
const InspectionInterval = 3

// Window is the number of days on either side of a due date that surface as
// Upcoming (before) or Pending (after) rather than None or Urgent.
const Window = 7

// NextInspectionDate returns the due date of the inspection following one
// submitted at submitted: three calendar months later, rolled forward to the
// following Monday when that lands on a weekend. The time of day is kept.
//
// Month overflow clamps to the last day of the target month, so 30 November
// maps to 28 (or 29) February rather than spilling into March.
func NextInspectionDate(submitted time.Time) time.Time {
	next := addMonths(submitted, InspectionInterval)

	switch next.Weekday() {
	case time.Saturday:
		next = next.AddDate(0, 0, 2)
	case time.Sunday:
		next = next.AddDate(0, 0, 1)
	}

	// TODO: skip public holidays once a holiday calendar source is chosen.
	return next
}

// addMonths adds n calendar months to t, clamping the day to the end of the
// target month.
func addMonths(t time.Time, n int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return first.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
