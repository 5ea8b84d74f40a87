// Package utils provides utility functions for the application.
package utils

import (
	"time"
)

// UTCNow returns the current time in UTC
func UTCNow() time.Time {
	return time.Now().UTC()
}

// DateOf truncates t to midnight UTC of its calendar day
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateWithin reports whether day lies in [from, to], compared by calendar day
func DateWithin(day, from, to time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(from)) && !d.After(DateOf(to))
}

// DaysAgo returns the UTC time the given number of days before now
func DaysAgo(now time.Time, days int) time.Time {
	return now.Add(-time.Duration(days) * 24 * time.Hour)
}
