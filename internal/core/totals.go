// Package core holds the week ledger domain model and its derived
// totals.
//
// This file contains the lenient amount parsing and the total
// derivations. Totals are recomputed on every read: the whole ledger is
// a handful of rows, so there is nothing worth caching or invalidating.
package core

import "strconv"

// ParseAmount converts user-entered numeric text to a float, treating
// empty or unparsable text as zero. Partially typed input ("12.", ".")
// must never break the totals display, so there is no error path here.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatAmount renders a computed amount back into the numeric-text
// form the ledger stores ("2", "2.5").
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ItemTotal is price × quantity for one row, parse-or-zero on both
// factors.
func ItemTotal(p LineItem) float64 {
	return ParseAmount(p.Price) * ParseAmount(p.Quantity)
}

// DailyTotal sums the row totals of one day. An out-of-range index
// contributes zero rather than failing: totals are a display
// derivation, never an error source.
func (w *WeekLedger) DailyTotal(day int) float64 {
	if day < 0 || day >= len(w.Days) {
		return 0
	}
	var total float64
	for _, p := range w.Days[day].Products {
		total += ItemTotal(p)
	}
	return total
}

// WeeklyTotal sums the daily totals across the whole week.
func (w *WeekLedger) WeeklyTotal() float64 {
	var total float64
	for i := range w.Days {
		total += w.DailyTotal(i)
	}
	return total
}
