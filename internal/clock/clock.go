// Package clock abstracts the current time so timestamps and day-based
// reports can be pinned in tests.
package clock

import "time"

// DayLayout is the calendar-day contract used for "same day" grouping.
const DayLayout = "2006-01-02"

// TimestampLayout is how sale and expense dates are rendered.
const TimestampLayout = "2006-01-02 15:04:05"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// Real reads the system clock.
type Real struct{}

func (Real) Now() time.Time { return time.Now() }

// Fixed always returns T.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

// Advance moves the fixed clock forward by d.
func (f *Fixed) Advance(d time.Duration) { f.T = f.T.Add(d) }

// DayKey extracts the calendar day of t in ISO 8601 form.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
