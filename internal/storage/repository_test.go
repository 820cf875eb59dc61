package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "ventaclara.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteGetSet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "salesData-VentaClara"); ok || err != nil {
		t.Fatalf("Get on empty store = ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "salesData-VentaClara", `["a"]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "salesData-VentaClara")
	if err != nil || !ok || v != `["a"]` {
		t.Fatalf("Get = %q, ok=%v, err=%v", v, ok, err)
	}

	// Whole-value overwrite on conflict.
	if err := s.Set(ctx, "salesData-VentaClara", `["b"]`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, _, _ = s.Get(ctx, "salesData-VentaClara")
	if v != `["b"]` {
		t.Fatalf("Get after overwrite = %q", v)
	}
}

func TestSQLiteKeysAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Set(ctx, "salesData-VentaClara", "one"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "salesData-Other", "two"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, _, _ := s.Get(ctx, "salesData-VentaClara")
	if v != "one" {
		t.Fatalf("key collision: %q", v)
	}
}
