package cache

import "sync"

// MemoryStore is an in-process blob store. It's thread-safe for
// concurrent access and keeps its own copy of every blob.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Find returns the blob stored under key, or ErrNotFound.
func (m *MemoryStore) Find(key string) ([]byte, error) {
	m.mu.RLock()
	blob, ok := m.blobs[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(blob))
	copy(out, blob)
	return out, nil
}

// Put stores a copy of blob under key.
func (m *MemoryStore) Put(key string, blob []byte) error {
	stored := make([]byte, len(blob))
	copy(stored, blob)
	m.mu.Lock()
	m.blobs[key] = stored
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
