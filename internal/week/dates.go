// Package week maps calendar dates onto the ledger's fixed Monday-first
// weekday tabs.
package week

import (
	"time"

	"ventaclara/internal/core"
)

// IndexFor returns the Monday-first weekday index (0..6) of t.
// time.Weekday counts from Sunday, so shift by six.
func IndexFor(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// DayNameFor returns the fixed weekday label for t.
func DayNameFor(t time.Time) string {
	return core.DayNames[IndexFor(t)]
}

// StartOfWeek returns the Monday of the week containing ref, at ref's
// time of day.
func StartOfWeek(ref time.Time) time.Time {
	return ref.AddDate(0, 0, -IndexFor(ref))
}

// DateOf returns the concrete date of the day with Monday-first index
// idx within the week containing ref.
func DateOf(idx int, ref time.Time) time.Time {
	return StartOfWeek(ref).AddDate(0, 0, idx)
}

// DateOfName resolves a weekday label to its concrete date within the
// week containing ref.
func DateOfName(name string, ref time.Time) (time.Time, error) {
	idx, err := core.DayIndex(name)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(idx, ref), nil
}

// Dates returns the seven dates of the week containing ref, Monday
// first, aligned with core.DayNames.
func Dates(ref time.Time) [core.DaysPerWeek]time.Time {
	var out [core.DaysPerWeek]time.Time
	start := StartOfWeek(ref)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}
