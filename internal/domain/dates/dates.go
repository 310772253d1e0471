// Package dates holds the date conventions shared between the store and the
// view layer. Due dates carry date-only semantics and are anchored to noon
// UTC so that reading the value back as a calendar date never drifts by a
// day across timezones. Row timestamps use a plain local-time literal.
package dates

import "time"

// TimestampLayout is the literal format used for created_at style columns.
const TimestampLayout = "2006-01-02 15:04:05"

// NoonUTC anchors t's calendar date to 12:00:00 UTC.
func NoonUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

// Midnight truncates t to local midnight, preserving its location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Timestamp formats t as a local-time literal with no timezone suffix.
func Timestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b.In(a.Location())))
}
