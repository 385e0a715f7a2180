package cache

import "github.com/ValentinKolb/fbstore/lib/feedback"

// StorageKey is the fixed key under which the feedback collection is persisted.
const StorageKey = "dashboard-prototyper-feedback"

// --------------------------------------------------------------------------
// Interface Definitions
// --------------------------------------------------------------------------

// ILocalCache is the synchronous, always available on-device copy of the whole
// feedback collection.
type ILocalCache interface {
	// Load returns the persisted collection. A missing key, an unavailable backend
	// or a value that can not be decoded all yield an empty collection; the
	// failure is logged and never returned.
	Load() []feedback.Entry
	// LoadStrict is Load for writers that save what they read. A missing key or
	// a value that can not be decoded yields an empty collection (the next save
	// replaces it), but a failing backend is returned as an error.
	LoadStrict() ([]feedback.Entry, error)
	// Save replaces the whole persisted collection.
	Save(entries []feedback.Entry) error
	// Close releases the backend.
	Close() error
}

// IBackend is a minimal key value storage used by the local cache.
// Implementations must replace a value atomically on Set.
type IBackend interface {
	// Get returns the value for key. The boolean is false if the key does not exist.
	Get(key string) (value []byte, found bool, err error)
	// Set replaces the value for key.
	Set(key string, value []byte) error
	// Close releases all resources held by the backend.
	Close() error
	// Name returns a short name of the backend (e.g. "file")
	Name() string
}
