package core

import "fmt"

// WeekLedger holds the full week of line items: exactly DaysPerWeek
// buckets in fixed Monday-first order. It is a plain in-memory
// structure; callers own synchronization and persistence.
type WeekLedger struct {
	Days []DayBucket
}

// NewWeekLedger builds a fresh ledger: seven day buckets, each holding
// exactly one blank row so every day is immediately editable.
func NewWeekLedger() *WeekLedger {
	days := make([]DayBucket, DaysPerWeek)
	for i := range days {
		days[i] = DayBucket{
			DayName:  DayNames[i],
			Products: []LineItem{NewBlankItem()},
		}
	}
	return &WeekLedger{Days: days}
}

func (w *WeekLedger) checkDay(day int) error {
	if day < 0 || day >= len(w.Days) {
		return fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}
	return nil
}

// AddItem appends a blank row to the given day and returns it. There is
// no upper bound on rows per day.
func (w *WeekLedger) AddItem(day int) (LineItem, error) {
	if err := w.checkDay(day); err != nil {
		return LineItem{}, err
	}
	item := NewBlankItem()
	w.Days[day].Products = append(w.Days[day].Products, item)
	return item, nil
}

// RemoveItem removes the row with the given id from the day. A missing
// id is a no-op. Either way, a day left without rows gets a fresh blank
// row back so it stays addressable.
func (w *WeekLedger) RemoveItem(day int, id string) error {
	if err := w.checkDay(day); err != nil {
		return err
	}
	kept := w.Days[day].Products[:0]
	for _, p := range w.Days[day].Products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, NewBlankItem())
	}
	w.Days[day].Products = kept
	return nil
}

// EditField overwrites one field of the row with the given id. For
// price and quantity, text that is non-empty and does not match the
// numeric pattern is rejected as a no-op and the prior value retained;
// the caller gets changed=false and no error. Names accept any string.
func (w *WeekLedger) EditField(day int, id, field, value string) (bool, error) {
	if err := w.checkDay(day); err != nil {
		return false, err
	}
	for i := range w.Days[day].Products {
		p := &w.Days[day].Products[i]
		if p.ID != id {
			continue
		}
		switch field {
		case FieldName:
			p.Name = value
		case FieldPrice, FieldQuantity:
			if !ValidAmountText(value) {
				return false, nil
			}
			if field == FieldPrice {
				p.Price = value
			} else {
				p.Quantity = value
			}
		default:
			return false, fmt.Errorf("%w: %q", ErrUnknownField, field)
		}
		return true, nil
	}
	return false, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// AdjustQuantity adds delta to the row's parsed quantity and stores the
// result back as text, clamped at zero so the step buttons can never
// drive it negative. Returns the new quantity text.
func (w *WeekLedger) AdjustQuantity(day int, id string, delta float64) (string, error) {
	if err := w.checkDay(day); err != nil {
		return "", err
	}
	for i := range w.Days[day].Products {
		p := &w.Days[day].Products[i]
		if p.ID != id {
			continue
		}
		next := ParseAmount(p.Quantity) + delta
		if next < 0 {
			next = 0
		}
		p.Quantity = FormatAmount(next)
		return p.Quantity, nil
	}
	return "", fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Clone returns a deep copy of the ledger, so read paths can hand data
// out without exposing the mutable backing slices.
func (w *WeekLedger) Clone() *WeekLedger {
	days := make([]DayBucket, len(w.Days))
	for i, d := range w.Days {
		days[i] = DayBucket{
			DayName:  d.DayName,
			Products: append([]LineItem(nil), d.Products...),
		}
	}
	return &WeekLedger{Days: days}
}
