// Package worker turns snapshot-saved notifications into weekly report
// exports.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"ventaclara/internal/amqp"
	"ventaclara/internal/export"
	"ventaclara/internal/snapshot"
)

// ExportWorker reads the snapshot a message points at, reduces it to
// totals, and hands the report to the configured writer.
type ExportWorker struct {
	store  snapshot.Store
	writer export.ReportWriter
}

func NewExportWorker(store snapshot.Store, writer export.ReportWriter) *ExportWorker {
	return &ExportWorker{store: store, writer: writer}
}

// HandleSnapshotSaved processes one snapshot-saved message. A snapshot
// that has vanished or no longer decodes is logged and acked rather
// than requeued: a later revision will supersede it anyway.
func (w *ExportWorker) HandleSnapshotSaved(ctx context.Context, msg *amqp.SnapshotSavedMessage) error {
	raw, ok, err := w.store.Get(ctx, msg.Key)
	if err != nil {
		return fmt.Errorf("get snapshot %q: %w", msg.Key, err)
	}
	if !ok {
		slog.WarnContext(ctx, "Snapshot missing, skipping export",
			"key", msg.Key, "revision", msg.Revision)
		return nil
	}

	ledger, err := snapshot.Decode(raw)
	if err != nil {
		slog.WarnContext(ctx, "Snapshot does not decode, skipping export",
			"key", msg.Key, "revision", msg.Revision, "error", err)
		return nil
	}

	report := export.BuildReport(msg.Key, msg.Revision, ledger)
	if err := w.writer.AppendWeekReport(ctx, report); err != nil {
		return fmt.Errorf("export report for %q rev %d: %w", msg.Key, msg.Revision, err)
	}

	slog.InfoContext(ctx, "Exported weekly report",
		"key", msg.Key,
		"revision", msg.Revision,
		"weekly_total", report.WeeklyTotal)
	return nil
}
