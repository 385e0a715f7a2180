package cache

import (
	"fmt"

	"github.com/ValentinKolb/fbstore/lib/feedback"
	"github.com/ValentinKolb/fbstore/lib/serializer"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("cache")

type localCache struct {
	backend    IBackend
	serializer serializer.IEntrySerializer
	key        string
}

// NewLocalCache creates a local cache that stores the collection under StorageKey
// in the given backend, encoded with the given serializer.
func NewLocalCache(backend IBackend, s serializer.IEntrySerializer) ILocalCache {
	return NewLocalCacheWithKey(backend, s, StorageKey)
}

// NewLocalCacheWithKey is like NewLocalCache but uses a custom storage key.
func NewLocalCacheWithKey(backend IBackend, s serializer.IEntrySerializer, key string) ILocalCache {
	if s == nil {
		s = serializer.NewJSONSerializer()
	}
	return &localCache{
		backend:    backend,
		serializer: s,
		key:        key,
	}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache.ILocalCache)
// --------------------------------------------------------------------------

func (c *localCache) Load() []feedback.Entry {
	entries, err := c.LoadStrict()
	if err != nil {
		Logger.Warningf("%v", err)
		return []feedback.Entry{}
	}
	return entries
}

func (c *localCache) LoadStrict() ([]feedback.Entry, error) {
	raw, found, err := c.backend.Get(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to read local feedback (%s backend): %w", c.backend.Name(), err)
	}
	if !found || len(raw) == 0 {
		return []feedback.Entry{}, nil
	}

	var entries []feedback.Entry
	if err := c.serializer.Deserialize(raw, &entries); err != nil {
		Logger.Warningf("Failed to parse local feedback (%s): %v", c.serializer.Name(), err)
		return []feedback.Entry{}, nil
	}
	if entries == nil {
		return []feedback.Entry{}, nil
	}
	return entries, nil
}

func (c *localCache) Save(entries []feedback.Entry) error {
	raw, err := c.serializer.Serialize(entries)
	if err != nil {
		return fmt.Errorf("failed to encode feedback: %w", err)
	}
	if err := c.backend.Set(c.key, raw); err != nil {
		return fmt.Errorf("failed to write feedback (%s backend): %w", c.backend.Name(), err)
	}
	return nil
}

func (c *localCache) Close() error {
	return c.backend.Close()
}
