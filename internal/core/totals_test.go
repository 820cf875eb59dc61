package core

import "testing"

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{".", 0},
		{"10", 10},
		{"12.5", 12.5},
		{".5", 0.5},
		{"12.", 12},
		{"007", 7},
		{"not-a-number", 0},
	}
	for _, tt := range tests {
		if got := ParseAmount(tt.in); got != tt.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDailyAndWeeklyTotal(t *testing.T) {
	w := NewWeekLedger()
	id := w.Days[0].Products[0].ID
	mustEdit(t, w, 0, id, FieldName, "Empanadas")
	mustEdit(t, w, 0, id, FieldPrice, "10")
	mustEdit(t, w, 0, id, FieldQuantity, "3")

	if got := w.DailyTotal(0); got != 30 {
		t.Fatalf("DailyTotal(0) = %v, want 30", got)
	}
	for day := 1; day < DaysPerWeek; day++ {
		if got := w.DailyTotal(day); got != 0 {
			t.Fatalf("DailyTotal(%d) = %v, want 0", day, got)
		}
	}
	if got := w.WeeklyTotal(); got != 30 {
		t.Fatalf("WeeklyTotal() = %v, want 30", got)
	}
}

func TestTotalsIgnorePartialInput(t *testing.T) {
	w := NewWeekLedger()
	id := w.Days[2].Products[0].ID
	mustEdit(t, w, 2, id, FieldPrice, "5.")
	mustEdit(t, w, 2, id, FieldQuantity, ".")

	// "5." parses to 5, "." parses to 0: the row contributes nothing
	// but nothing errors either.
	if got := w.DailyTotal(2); got != 0 {
		t.Fatalf("DailyTotal(2) = %v, want 0", got)
	}
}

func TestTotalsArePureReads(t *testing.T) {
	w := NewWeekLedger()
	id := w.Days[5].Products[0].ID
	mustEdit(t, w, 5, id, FieldPrice, "2.5")
	mustEdit(t, w, 5, id, FieldQuantity, "4")

	first, second := w.WeeklyTotal(), w.WeeklyTotal()
	if first != second {
		t.Fatalf("WeeklyTotal not stable: %v then %v", first, second)
	}
	if d1, d2 := w.DailyTotal(5), w.DailyTotal(5); d1 != d2 {
		t.Fatalf("DailyTotal not stable: %v then %v", d1, d2)
	}
}

func TestDailyTotalOutOfRange(t *testing.T) {
	w := NewWeekLedger()
	if got := w.DailyTotal(-1); got != 0 {
		t.Fatalf("DailyTotal(-1) = %v, want 0", got)
	}
	if got := w.DailyTotal(7); got != 0 {
		t.Fatalf("DailyTotal(7) = %v, want 0", got)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{3, "3"},
		{2.5, "2.5"},
		{0.5, "0.5"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func mustEdit(t *testing.T, w *WeekLedger, day int, id, field, value string) {
	t.Helper()
	changed, err := w.EditField(day, id, field, value)
	if err != nil {
		t.Fatalf("EditField(%d, %s, %q): %v", day, field, value, err)
	}
	if !changed {
		t.Fatalf("EditField(%d, %s, %q) rejected", day, field, value)
	}
}
