package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// Backend persists one serialized item list per cart key. Load reports an
// empty list for keys that have never been saved; implementations should
// treat unparseable stored data the same way rather than failing the cart.
type Backend interface {
	Load(ctx context.Context, key string) ([]Item, error)
	Save(ctx context.Context, key string, items []Item) error
}

// MemoryBackend keeps carts in-process. Used by tests and as a last-resort
// fallback when no durable backend is configured.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{data: map[string][]byte{}}
}

func (m *MemoryBackend) Load(_ context.Context, key string) ([]Item, error) {
	m.mu.RLock()
	raw, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return decodeItems(raw), nil
}

func (m *MemoryBackend) Save(_ context.Context, key string, items []Item) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

// decodeItems tolerates corrupt payloads by treating them as an empty cart.
func decodeItems(raw []byte) []Item {
	if len(raw) == 0 {
		return nil
	}
	var items []Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}
