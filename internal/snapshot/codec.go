// Package snapshot defines the persisted form of the week ledger: a
// JSON array of seven {dayName, products} objects in fixed weekday
// order, plus the store port it is read from and written to.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"ventaclara/internal/core"
)

// ErrBadShape marks a snapshot that parsed but does not look like a
// week: wrong bucket count or unexpected day names. Callers fall back
// to a fresh ledger rather than trusting it.
var ErrBadShape = errors.New("snapshot shape mismatch")

// Encode serializes the ledger days.
func Encode(w *core.WeekLedger) (string, error) {
	b, err := json.Marshal(w.Days)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return string(b), nil
}

// Decode parses a snapshot and validates its shape. Structural
// mismatches (not seven buckets, day names out of order) discard the
// snapshot wholesale via ErrBadShape. Item-level oddities are repaired
// instead: rows without an id get a fresh one, numeric text that
// violates the pattern is cleared, and an empty day gets its blank row
// back.
func Decode(raw string) (*core.WeekLedger, error) {
	var days []core.DayBucket
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if err := validateShape(days); err != nil {
		return nil, err
	}
	for i := range days {
		repairDay(&days[i])
	}
	return &core.WeekLedger{Days: days}, nil
}

func validateShape(days []core.DayBucket) error {
	if len(days) != core.DaysPerWeek {
		return fmt.Errorf("%w: %d day buckets", ErrBadShape, len(days))
	}
	for i, d := range days {
		if d.DayName != core.DayNames[i] {
			return fmt.Errorf("%w: day %d is %q, want %q", ErrBadShape, i, d.DayName, core.DayNames[i])
		}
	}
	return nil
}

func repairDay(d *core.DayBucket) {
	for i := range d.Products {
		p := &d.Products[i]
		if p.ID == "" {
			p.ID = core.NewBlankItem().ID
		}
		if !core.ValidAmountText(p.Price) {
			p.Price = ""
		}
		if !core.ValidAmountText(p.Quantity) {
			p.Quantity = ""
		}
	}
	if len(d.Products) == 0 {
		d.Products = []core.LineItem{core.NewBlankItem()}
	}
}
