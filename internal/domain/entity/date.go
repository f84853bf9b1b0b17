package entity

import "time"

// DateOnly normalizes a timestamp to midnight UTC so work_date values compare
// by calendar day regardless of how the driver round-trips them.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today returns the current calendar day, normalized like DateOnly.
func Today() time.Time {
	return DateOnly(time.Now())
}
