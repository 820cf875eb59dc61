package services

import (
	"context"
	"errors"
	"testing"

	"ventaclara/internal/core"
	"ventaclara/internal/snapshot"
)

// fakeStore records every write and can simulate failures.
type fakeStore struct {
	values  map[string]string
	sets    int
	getErr  error
	setErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Get(_ context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeStore) Set(_ context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.sets++
	f.values[key] = value
	return nil
}

type fakePublisher struct {
	published []int64
	err       error
}

func (f *fakePublisher) PublishSnapshotSaved(_ context.Context, _ string, revision int64) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, revision)
	return nil
}

func TestLoadFreshWhenAbsent(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())

	w := svc.Week()
	if len(w.Days) != core.DaysPerWeek {
		t.Fatalf("expected fresh 7-day ledger, got %d days", len(w.Days))
	}
	// No write-back at load time.
	if store.sets != 0 {
		t.Fatalf("load must not persist, saw %d writes", store.sets)
	}
}

func TestLoadUsesStoredSnapshot(t *testing.T) {
	seed := core.NewWeekLedger()
	id := seed.Days[0].Products[0].ID
	if _, err := seed.EditField(0, id, core.FieldPrice, "10"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if _, err := seed.EditField(0, id, core.FieldQuantity, "3"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	raw, err := snapshot.Encode(seed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	store := newFakeStore()
	store.values["salesData-VentaClara"] = raw

	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())

	w := svc.Week()
	if got := w.DailyTotal(0); got != 30 {
		t.Fatalf("DailyTotal(0) = %v, want 30", got)
	}
}

func TestLoadFallsBackOnBadSnapshot(t *testing.T) {
	for name, raw := range map[string]string{
		"unparsable":     "{{{",
		"wrong shape":    `[{"dayName":"Lunes","products":[]}]`,
		"not an array":   `{"dayName":"Lunes"}`,
	} {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore()
			store.values["salesData-VentaClara"] = raw

			svc := NewLedgerService(store, nil, "VentaClara")
			svc.Load(context.Background())

			w := svc.Week()
			if len(w.Days) != core.DaysPerWeek {
				t.Fatalf("expected fresh ledger, got %d days", len(w.Days))
			}
			if got := w.WeeklyTotal(); got != 0 {
				t.Fatalf("fresh ledger total = %v", got)
			}
		})
	}
}

func TestLoadFallsBackOnStoreError(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("backend down")

	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())

	if len(svc.Week().Days) != core.DaysPerWeek {
		t.Fatalf("expected fresh ledger after store failure")
	}
}

func TestMutationsPersistWholeSnapshot(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())
	ctx := context.Background()

	item, err := svc.AddItem(ctx, 0)
	if err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if store.sets != 1 {
		t.Fatalf("expected 1 write after add, got %d", store.sets)
	}

	if _, err := svc.EditField(ctx, 0, item.ID, core.FieldPrice, "4"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if err := svc.RemoveItem(ctx, 0, item.ID); err != nil {
		t.Fatalf("RemoveItem: %v", err)
	}
	if store.sets != 3 {
		t.Fatalf("expected 3 writes, got %d", store.sets)
	}

	// The persisted value is the whole decodable week.
	w, err := snapshot.Decode(store.values["salesData-VentaClara"])
	if err != nil {
		t.Fatalf("persisted snapshot does not decode: %v", err)
	}
	if len(w.Days) != core.DaysPerWeek {
		t.Fatalf("persisted snapshot has %d days", len(w.Days))
	}
}

func TestRejectedEditDoesNotPersist(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())
	ctx := context.Background()

	id := svc.Week().Days[0].Products[0].ID
	if _, err := svc.EditField(ctx, 0, id, core.FieldPrice, "12.5"); err != nil {
		t.Fatalf("EditField: %v", err)
	}
	writes := store.sets

	changed, err := svc.EditField(ctx, 0, id, core.FieldPrice, "12.5.6")
	if err != nil {
		t.Fatalf("EditField: %v", err)
	}
	if changed {
		t.Fatalf("invalid numeric text must be rejected")
	}
	if store.sets != writes {
		t.Fatalf("rejected edit persisted: %d -> %d writes", writes, store.sets)
	}
	if got := svc.Week().Days[0].Products[0].Price; got != "12.5" {
		t.Fatalf("prior value lost: %q", got)
	}
}

func TestPersistFailureDoesNotFailMutation(t *testing.T) {
	store := newFakeStore()
	store.setErr = errors.New("disk full")
	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())

	if _, err := svc.AddItem(context.Background(), 2); err != nil {
		t.Fatalf("mutation must survive a persist failure, got %v", err)
	}
	if got := len(svc.Week().Days[2].Products); got != 2 {
		t.Fatalf("in-memory state lost on persist failure, %d rows", got)
	}
	if svc.Revision() != 0 {
		t.Fatalf("revision bumped despite failed write")
	}
}

func TestPublisherNotifiedPerPersist(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{}
	svc := NewLedgerService(store, pub, "VentaClara")
	svc.Load(context.Background())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if _, err := svc.AddItem(ctx, 1); err != nil {
		t.Fatalf("AddItem: %v", err)
	}

	if len(pub.published) != 2 || pub.published[0] != 1 || pub.published[1] != 2 {
		t.Fatalf("published revisions %v, want [1 2]", pub.published)
	}
}

func TestPublishFailureIsSwallowed(t *testing.T) {
	store := newFakeStore()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewLedgerService(store, pub, "VentaClara")
	svc.Load(context.Background())

	if _, err := svc.AddItem(context.Background(), 0); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if svc.Revision() != 1 {
		t.Fatalf("revision = %d, want 1", svc.Revision())
	}
}

func TestAdjustQuantityPersists(t *testing.T) {
	store := newFakeStore()
	svc := NewLedgerService(store, nil, "VentaClara")
	svc.Load(context.Background())
	ctx := context.Background()

	id := svc.Week().Days[6].Products[0].ID
	if _, err := svc.EditField(ctx, 6, id, core.FieldQuantity, "2"); err != nil {
		t.Fatalf("EditField: %v", err)
	}

	got, err := svc.AdjustQuantity(ctx, 6, id, -5)
	if err != nil {
		t.Fatalf("AdjustQuantity: %v", err)
	}
	if got != "0" {
		t.Fatalf("quantity %q, want clamped \"0\"", got)
	}

	w, err := snapshot.Decode(store.values["salesData-VentaClara"])
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if w.Days[6].Products[0].Quantity != "0" {
		t.Fatalf("persisted quantity %q", w.Days[6].Products[0].Quantity)
	}
}
