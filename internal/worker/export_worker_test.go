package worker

import (
	"context"
	"errors"
	"testing"

	"ventaclara/internal/amqp"
	"ventaclara/internal/core"
	"ventaclara/internal/export"
	"ventaclara/internal/snapshot"
)

type fakeStore struct {
	values map[string]string
	err    error
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if f.err != nil {
		return "", false, f.err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeWriter struct {
	reports []export.Report
	err     error
}

func (f *fakeWriter) AppendWeekReport(_ context.Context, r export.Report) error {
	if f.err != nil {
		return f.err
	}
	f.reports = append(f.reports, r)
	return nil
}

func seededSnapshot(t *testing.T) string {
	t.Helper()
	w := core.NewWeekLedger()
	id := w.Days[0].Products[0].ID
	if _, err := w.EditField(0, id, core.FieldPrice, "10"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if _, err := w.EditField(0, id, core.FieldQuantity, "3"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	raw, err := snapshot.Encode(w)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return raw
}

func TestHandleSnapshotSavedExports(t *testing.T) {
	store := &fakeStore{values: map[string]string{
		"salesData-VentaClara": seededSnapshot(t),
	}}
	writer := &fakeWriter{}
	w := NewExportWorker(store, writer)

	msg := amqp.NewSnapshotSavedMessage("salesData-VentaClara", 3)
	if err := w.HandleSnapshotSaved(context.Background(), msg); err != nil {
		t.Fatalf("HandleSnapshotSaved: %v", err)
	}

	if len(writer.reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(writer.reports))
	}
	r := writer.reports[0]
	if r.Revision != 3 || r.WeeklyTotal != 30 {
		t.Fatalf("report = %+v", r)
	}
}

func TestHandleSnapshotSavedMissingSnapshotIsAcked(t *testing.T) {
	store := &fakeStore{values: map[string]string{}}
	writer := &fakeWriter{}
	w := NewExportWorker(store, writer)

	msg := amqp.NewSnapshotSavedMessage("salesData-VentaClara", 1)
	if err := w.HandleSnapshotSaved(context.Background(), msg); err != nil {
		t.Fatalf("missing snapshot must not error (no requeue): %v", err)
	}
	if len(writer.reports) != 0 {
		t.Fatalf("nothing should have been exported")
	}
}

func TestHandleSnapshotSavedBadSnapshotIsAcked(t *testing.T) {
	store := &fakeStore{values: map[string]string{
		"salesData-VentaClara": "{{{",
	}}
	writer := &fakeWriter{}
	w := NewExportWorker(store, writer)

	msg := amqp.NewSnapshotSavedMessage("salesData-VentaClara", 1)
	if err := w.HandleSnapshotSaved(context.Background(), msg); err != nil {
		t.Fatalf("undecodable snapshot must not error: %v", err)
	}
}

func TestHandleSnapshotSavedPropagatesFailures(t *testing.T) {
	store := &fakeStore{err: errors.New("backend down")}
	w := NewExportWorker(store, &fakeWriter{})
	if err := w.HandleSnapshotSaved(context.Background(), amqp.NewSnapshotSavedMessage("k", 1)); err == nil {
		t.Fatalf("store failure should propagate for requeue")
	}

	store2 := &fakeStore{values: map[string]string{"k": seededSnapshot(t)}}
	// Key mismatch on purpose: seed under "k".
	w2 := NewExportWorker(store2, &fakeWriter{err: errors.New("sheets down")})
	if err := w2.HandleSnapshotSaved(context.Background(), amqp.NewSnapshotSavedMessage("k", 1)); err == nil {
		t.Fatalf("writer failure should propagate for requeue")
	}
}
