// Package memory is the default snapshot store: a map guarded by a
// mutex, optionally mirrored to per-key files so snapshots survive a
// restart without a database.
package memory

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Store struct {
	mu     sync.Mutex
	values map[string]string
	dir    string // empty means purely in-memory
}

func New() *Store {
	return &Store{values: make(map[string]string)}
}

// NewFromDir seeds the store from "<key>.json" files under base and
// mirrors every Set back to those files. Unreadable seed files are
// skipped.
func NewFromDir(base string) *Store {
	s := &Store{values: make(map[string]string), dir: base}
	entries, err := os.ReadDir(base)
	if err != nil {
		return s
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(base, e.Name()))
		if err != nil {
			slog.Warn("Skipping unreadable snapshot file", "file", e.Name(), "error", err)
			continue
		}
		key := strings.TrimSuffix(e.Name(), ".json")
		s.values[key] = string(b)
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	s.values[key] = value
	dir := s.dir
	s.mu.Unlock()

	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, key+".json")
	if err := os.WriteFile(path, []byte(value), 0o644); err != nil {
		slog.ErrorContext(ctx, "Failed to mirror snapshot to file", "path", path, "error", err)
		return err
	}
	return nil
}
