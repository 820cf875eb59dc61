// Package export defines the weekly report shape and the outbound port
// it is written through.
package export

import (
	"context"
	"time"

	"ventaclara/internal/core"
)

type (
	// DayTotal is one day's computed total.
	DayTotal struct {
		DayName string
		Total   float64
	}

	// Report is a snapshot revision reduced to its totals.
	Report struct {
		Key         string
		Revision    int64
		GeneratedAt time.Time
		Days        []DayTotal
		WeeklyTotal float64
	}
)

// ReportWriter is the outbound port for weekly report exports.
type ReportWriter interface {
	AppendWeekReport(ctx context.Context, r Report) error
}

// BuildReport reduces a ledger to its per-day and weekly totals.
func BuildReport(key string, revision int64, w *core.WeekLedger) Report {
	r := Report{
		Key:         key,
		Revision:    revision,
		GeneratedAt: time.Now(),
		Days:        make([]DayTotal, 0, len(w.Days)),
	}
	for i, d := range w.Days {
		r.Days = append(r.Days, DayTotal{DayName: d.DayName, Total: w.DailyTotal(i)})
	}
	r.WeeklyTotal = w.WeeklyTotal()
	return r
}
