package snapshot

import "context"

// Store is the key-value blob store the serialized week lives in. The
// in-memory ledger is the source of truth for the running session; the
// store is a best-effort mirror read once at startup and overwritten
// whole on every mutation.
type Store interface {
	// Get returns the snapshot under key, with ok=false when absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set overwrites the snapshot under key.
	Set(ctx context.Context, key, value string) error
}

// Key returns the fixed snapshot key for an app name, matching the
// browser-storage key the original data was written under.
func Key(appName string) string {
	return "salesData-" + appName
}
