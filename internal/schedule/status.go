package schedule

import "time"

// Status is the urgency of a client's next inspection date.
// The literal values are a wire contract: dashboards branch on them.
type Status string

const (
	StatusNone     Status = "None"
	StatusUpcoming Status = "Upcoming"
	StatusDueToday Status = "Due Today"
	StatusPending  Status = "Pending"
	StatusUrgent   Status = "Urgent"
)

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid returns true if the status is a recognized value.
func (s Status) IsValid() bool {
	switch s {
	case StatusNone, StatusUpcoming, StatusDueToday, StatusPending, StatusUrgent:
		return true
	}
	return false
}

// StatusOf classifies due relative to now. Both are truncated to calendar
// days in now's location before comparing, so the time of day never matters.
//
//	nil          -> None
//	due today    -> Due Today
//	1..7 ahead   -> Upcoming
//	1..7 behind  -> Pending
//	>7 behind    -> Urgent
//	>7 ahead     -> None
func StatusOf(due *time.Time, now time.Time) Status {
	if due == nil {
		return StatusNone
	}

	diff := DaysBetween(now, *due)
	switch {
	case diff == 0:
		return StatusDueToday
	case diff > 0 && diff <= Window:
		return StatusUpcoming
	case diff < 0 && diff >= -Window:
		return StatusPending
	case diff < -Window:
		return StatusUrgent
	default:
		return StatusNone
	}
}

// DaysBetween returns the number of whole calendar days from `from` to `to`,
// negative when to is earlier. Both are read as dates in from's location.
func DaysBetween(from, to time.Time) int {
	loc := from.Location()
	a := civilDay(from.In(loc))
	b := civilDay(to.In(loc))
	return int(b.Sub(a).Hours() / 24)
}

// civilDay maps t's calendar date onto UTC midnight, which has no DST
// transitions, so day arithmetic is exact.
func civilDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock supplies the current time. Services take a Clock so tests can pin "now".
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now returns f().
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)
