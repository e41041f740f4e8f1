package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used when Redis is not configured and
// in tests. Entries expire lazily on read.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	locks map[string]memoryItem
	now   func() time.Time
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

var (
	_ Store  = (*MemoryStore)(nil)
	_ Locker = (*MemoryStore)(nil)
)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: map[string]memoryItem{},
		locks: map[string]memoryItem{},
		now:   time.Now,
	}
}

func (m *MemoryStore) GetJSON(_ context.Context, key string, dst interface{}) error {
	m.mu.Lock()
	item, ok := m.items[key]
	if ok && !item.expiresAt.IsZero() && !m.now().Before(item.expiresAt) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return ErrMiss
	}
	return json.Unmarshal(item.data, dst)
}

func (m *MemoryStore) SetJSON(_ context.Context, key string, v interface{}, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	item := memoryItem{data: data}
	if ttl > 0 {
		item.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.items[key] = item
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

// DeletePattern supports the glob subset shared by Redis and path.Match.
func (m *MemoryStore) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if ok, _ := path.Match(pattern, k); ok {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// AcquireLock is the in-process counterpart of the Redis SET NX lock. It only
// serializes callers sharing this store.
func (m *MemoryStore) AcquireLock(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if held, ok := m.locks[key]; ok && (held.expiresAt.IsZero() || now.Before(held.expiresAt)) {
		return false, nil
	}
	lock := memoryItem{data: []byte(value)}
	if ttl > 0 {
		lock.expiresAt = now.Add(ttl)
	}
	m.locks[key] = lock
	return true, nil
}

// ReleaseLock drops key only when it still holds value.
func (m *MemoryStore) ReleaseLock(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if held, ok := m.locks[key]; ok && string(held.data) == value {
		delete(m.locks, key)
	}
	return nil
}
