// Package schedule holds the calendar rules for booking availability.
// Scheduling is single-job-per-day: a calendar day is blocked for new
// bookings when it already carries a booking or lies in the past.
// Time-of-day and time zones are ignored by comparing UTC calendar days.
package schedule

import "time"

// dateLayout is the calendar-day form accepted by the availability
// endpoint alongside RFC 3339.
const dateLayout = "2006-01-02"

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return Day(a).Equal(Day(b))
}

// IsBlocked reports whether day cannot take a new booking: it is
// strictly before now's calendar day, or it shares a calendar day with
// an existing booking.
func IsBlocked(day, now time.Time, booked []time.Time) bool {
	if Day(day).Before(Day(now)) {
		return true
	}
	for _, b := range booked {
		if SameDay(day, b) {
			return true
		}
	}
	return false
}

// ParseDate parses a scheduled date from client input.  It accepts an
// RFC 3339 timestamp or a bare YYYY-MM-DD day and returns the UTC
// calendar day in both cases.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}
