package core

import (
	"errors"
	"regexp"

	"github.com/google/uuid"
)

// DaysPerWeek is the fixed number of day buckets in a ledger.
const DaysPerWeek = 7

// Field names accepted by WeekLedger.EditField.
const (
	FieldName     = "name"
	FieldPrice    = "price"
	FieldQuantity = "quantity"
)

// DayNames are the fixed weekday labels, Monday first. The labels (and
// their order) are part of the snapshot format and never change.
var DayNames = [DaysPerWeek]string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

var (
	ErrInvalidDay   = errors.New("day index out of range")
	ErrUnknownField = errors.New("unknown field")
	ErrItemNotFound = errors.New("item not found")
	ErrUnknownDay   = errors.New("unknown day name")
)

// amountPattern is the only shape price and quantity text may take:
// empty, or digits with at most one decimal point. Partial input such
// as a trailing "." is valid on purpose.
var amountPattern = regexp.MustCompile(`^\d*\.?\d*$`)

type (
	// LineItem is one product row within a day. Price and Quantity keep
	// the exact text the user typed; totals parse them leniently.
	LineItem struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Price    string `json:"price"`
		Quantity string `json:"quantity"`
	}

	// DayBucket is one weekday's ordered product rows. Insertion order
	// is display order, and Products is never left empty.
	DayBucket struct {
		DayName  string     `json:"dayName"`
		Products []LineItem `json:"products"`
	}
)

// NewBlankItem returns an empty row with a fresh id.
func NewBlankItem() LineItem {
	return LineItem{ID: uuid.NewString()}
}

// ValidAmountText reports whether s may be stored as price or quantity
// text.
func ValidAmountText(s string) bool {
	return s == "" || amountPattern.MatchString(s)
}

// DayIndex maps a fixed weekday label to its Monday-first index.
func DayIndex(name string) (int, error) {
	for i, n := range DayNames {
		if n == name {
			return i, nil
		}
	}
	return 0, ErrUnknownDay
}
