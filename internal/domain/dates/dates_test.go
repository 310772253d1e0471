package dates

import (
	"testing"
	"time"
)

func TestNoonUTC(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"morning utc",
			time.Date(2024, 3, 5, 8, 15, 30, 0, time.UTC),
			time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		},
		{
			"already noon",
			time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC),
		},
		{
			"late evening",
			time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NoonUTC(tt.in); !got.Equal(tt.want) {
				t.Errorf("NoonUTC(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNoonUTCKeepsCalendarDate(t *testing.T) {
	// Anchoring must use the wall-clock date of the input, not shift it.
	east := time.FixedZone("UTC+10", 10*3600)
	in := time.Date(2024, 3, 5, 1, 0, 0, 0, east)

	got := NoonUTC(in)
	want := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("NoonUTC(%v) = %v, want %v", in, got, want)
	}
}

func TestMidnight(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*3600)
	in := time.Date(2024, 3, 5, 18, 45, 12, 999, zone)

	got := Midnight(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("Midnight(%v) = %v, not truncated", in, got)
	}
	if got.Location() != zone {
		t.Errorf("Midnight(%v) changed location to %v", in, got.Location())
	}
	if got.Day() != 5 {
		t.Errorf("Midnight(%v) changed day to %d", in, got.Day())
	}
}

func TestTimestamp(t *testing.T) {
	in := time.Date(2024, 3, 5, 8, 4, 9, 0, time.UTC)

	got := Timestamp(in)
	want := "2024-03-05 08:04:09"
	if got != want {
		t.Errorf("Timestamp() = %q, want %q", got, want)
	}
}

func TestSameDay(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want bool
	}{
		{
			"same calendar day",
			time.Date(2024, 3, 5, 0, 0, 1, 0, time.UTC),
			time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC),
			true,
		},
		{
			"adjacent days",
			time.Date(2024, 3, 5, 23, 59, 59, 0, time.UTC),
			time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameDay(tt.a, tt.b); got != tt.want {
				t.Errorf("SameDay() = %v, want %v", got, tt.want)
			}
		})
	}
}
