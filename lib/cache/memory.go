package cache

import "sync"

type memoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryBackend creates a process local backend. Values are lost when the process exits.
func NewMemoryBackend() IBackend {
	return &memoryBackend{data: make(map[string][]byte)}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see cache.IBackend)
// --------------------------------------------------------------------------

func (b *memoryBackend) Get(key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (b *memoryBackend) Set(key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	b.mu.Lock()
	b.data[key] = v
	b.mu.Unlock()
	return nil
}

func (b *memoryBackend) Close() error {
	return nil
}

func (b *memoryBackend) Name() string {
	return "memory"
}
