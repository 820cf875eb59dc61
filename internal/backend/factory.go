package backend

import (
	"fmt"
	"log/slog"

	"ventaclara/internal/snapshot/memory"
	"ventaclara/internal/storage"
)

// Factory creates snapshot stores based on configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateStore builds the configured store.
func (f *Factory) CreateStore(cfg Config) (*Result, error) {
	switch cfg.Type {
	case SQLiteBackend:
		store, err := storage.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite snapshot store: %w", err)
		}
		f.logger.Info("Initialized SQLite snapshot store", "db_path", cfg.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		dir := cfg.SnapshotDir
		if dir == "" {
			dir = "data"
		}
		store := memory.NewFromDir(dir)
		f.logger.Info("Initialized memory snapshot store", "snapshot_dir", dir)
		return &Result{Store: store, Cleanup: nil}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", cfg.Type)
	}
}
