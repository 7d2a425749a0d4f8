// Package cache provides the TTL key store backing the access-token
// blacklist: an in-memory map for single-process deployments and tests, and
// a Redis backend for deployments that need revocations shared across
// processes.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is a minimal TTL-capable key store. Implementations must be safe
// for concurrent use.
type Store interface {
	// Set records key for ttl. A non-positive ttl still records the key
	// momentarily; callers clamp ttl at zero before calling.
	Set(ctx context.Context, key string, ttl time.Duration) error
	// Exists reports whether key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)
}

// MemoryStore is a process-local Store. Expired entries are dropped lazily
// on lookup and on subsequent writes.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time), now: time.Now}
}

// NewMemoryStoreWithClock builds a memory store with an injectable clock.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = now
	return s
}

func (s *MemoryStore) Set(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = s.now().Add(ttl)
	return nil
}

func (s *MemoryStore) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	if !deadline.After(s.now()) {
		delete(s.entries, key)
		return false, nil
	}
	return true, nil
}
