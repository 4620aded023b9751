package services

import (
	"context"
	"sync"
	"time"

	"tokentasks/internal/domain"
)

// memoryCacheEntry is one cached value with its expiry.
type memoryCacheEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCacheBackend provides an in-process CacheBackend used when no Redis
// instance is configured.
type MemoryCacheBackend struct {
	entries map[string]memoryCacheEntry
	mutex   sync.RWMutex
}

// NewMemoryCacheBackend creates a new in-memory cache backend.
func NewMemoryCacheBackend() *MemoryCacheBackend {
	return &MemoryCacheBackend{
		entries: make(map[string]memoryCacheEntry),
	}
}

// Set stores a value with a TTL.
func (m *MemoryCacheBackend) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry := memoryCacheEntry{data: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.entries[key] = entry
	return nil
}

// Get retrieves a value, dropping it if expired.
func (m *MemoryCacheBackend) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, exists := m.entries[key]
	if !exists {
		return nil, domain.NewNotFoundError("CACHE_MISS", "Cache miss")
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		delete(m.entries, key)
		return nil, domain.NewNotFoundError("CACHE_MISS", "Cache miss")
	}
	return append([]byte(nil), entry.data...), nil
}

// Delete removes a key.
func (m *MemoryCacheBackend) Delete(_ context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.entries, key)
	return nil
}

// Flush removes every key.
func (m *MemoryCacheBackend) Flush(_ context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.entries = make(map[string]memoryCacheEntry)
	return nil
}

// Ping always succeeds for the in-process backend.
func (m *MemoryCacheBackend) Ping(_ context.Context) error {
	return nil
}
