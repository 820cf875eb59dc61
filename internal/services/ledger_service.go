// Package services wires the week ledger to its snapshot store and the
// optional snapshot-saved event stream.
package services

import (
	"context"
	"log/slog"
	"sync"

	"ventaclara/internal/core"
	"ventaclara/internal/snapshot"
)

// Publisher notifies downstream consumers that a snapshot revision was
// written. *amqp.Client satisfies it; a nil Publisher disables
// notifications.
type Publisher interface {
	PublishSnapshotSaved(ctx context.Context, key string, revision int64) error
}

// LedgerService owns the in-memory week ledger for the session. The
// ledger is the source of truth; the store is a best-effort mirror
// rewritten whole after every successful mutation. A single mutex keeps
// the one-writer model intact under concurrent HTTP handlers.
type LedgerService struct {
	mu        sync.Mutex
	store     snapshot.Store
	publisher Publisher
	key       string
	ledger    *core.WeekLedger
	revision  int64
}

func NewLedgerService(store snapshot.Store, publisher Publisher, appName string) *LedgerService {
	return &LedgerService{
		store:     store,
		publisher: publisher,
		key:       snapshot.Key(appName),
		ledger:    core.NewWeekLedger(),
	}
}

// Load replaces the ledger with the persisted snapshot, if there is a
// usable one. Every failure mode (store error, parse error, shape
// mismatch) is contained here: it is logged and the session starts from
// a fresh week instead. Nothing is written back at load time; the first
// persisted write happens on the first mutation.
func (s *LedgerService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read snapshot, starting fresh",
			"key", s.key, "error", err)
		s.ledger = core.NewWeekLedger()
		return
	}
	if !ok {
		slog.InfoContext(ctx, "No snapshot found, starting fresh", "key", s.key)
		s.ledger = core.NewWeekLedger()
		return
	}

	ledger, err := snapshot.Decode(raw)
	if err != nil {
		slog.ErrorContext(ctx, "Discarding unusable snapshot, starting fresh",
			"key", s.key, "error", err)
		s.ledger = core.NewWeekLedger()
		return
	}

	s.ledger = ledger
	slog.InfoContext(ctx, "Loaded snapshot", "key", s.key)
}

// AddItem appends a blank row to the given day and persists.
func (s *LedgerService) AddItem(ctx context.Context, day int) (core.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, err := s.ledger.AddItem(day)
	if err != nil {
		return core.LineItem{}, err
	}
	s.persistLocked(ctx)
	return item, nil
}

// RemoveItem removes a row (no-op on unknown ids, never leaves a day
// empty) and persists.
func (s *LedgerService) RemoveItem(ctx context.Context, day int, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ledger.RemoveItem(day, id); err != nil {
		return err
	}
	s.persistLocked(ctx)
	return nil
}

// EditField applies a field edit. Rejected numeric text is a silent
// no-op: nothing persists and the caller sees changed=false.
func (s *LedgerService) EditField(ctx context.Context, day int, id, field, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed, err := s.ledger.EditField(day, id, field, value)
	if err != nil {
		return false, err
	}
	if !changed {
		slog.DebugContext(ctx, "Rejected numeric edit, prior value retained",
			"day", day, "item_id", id, "field", field)
		return false, nil
	}
	s.persistLocked(ctx)
	return true, nil
}

// AdjustQuantity steps a row's quantity, clamped at zero, and persists.
func (s *LedgerService) AdjustQuantity(ctx context.Context, day int, id string, delta float64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	quantity, err := s.ledger.AdjustQuantity(day, id, delta)
	if err != nil {
		return "", err
	}
	s.persistLocked(ctx)
	return quantity, nil
}

// Week returns a deep copy of the current ledger for read paths.
func (s *LedgerService) Week() *core.WeekLedger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Clone()
}

// Revision returns the number of snapshot writes this session.
func (s *LedgerService) Revision() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// persistLocked rewrites the whole snapshot under the fixed key. Write
// failures are logged and swallowed: the in-memory ledger stays
// authoritative for the session either way. Callers hold s.mu.
func (s *LedgerService) persistLocked(ctx context.Context) {
	raw, err := snapshot.Encode(s.ledger)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to serialize snapshot", "key", s.key, "error", err)
		return
	}
	if err := s.store.Set(ctx, s.key, raw); err != nil {
		slog.ErrorContext(ctx, "Failed to persist snapshot", "key", s.key, "error", err)
		return
	}
	s.revision++

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishSnapshotSaved(ctx, s.key, s.revision); err != nil {
		// Notifications are best-effort, the mutation already succeeded.
		slog.ErrorContext(ctx, "Failed to publish snapshot saved message",
			"key", s.key, "revision", s.revision, "error", err)
	}
}
