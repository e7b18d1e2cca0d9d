package cache

import (
	"context" // Context for store operations
	"path"    // Glob matching for Keys
	"sync"    // Mutex guarding the map
	"time"    // TTL bookkeeping
)

// MemoryStore is a map-backed Store used by tests and local runs without Redis
type MemoryStore struct {
	mu      sync.Mutex           // Guards items
	items   map[string]memEntry  // Stored values
	nowFunc func() time.Time     // Clock, overridable in tests
}

// memEntry is a stored value with its expiry deadline
type memEntry struct {
	value     string    // Stored value
	expiresAt time.Time // Zero means no expiry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]memEntry), nowFunc: time.Now}
}

// expired reports whether an entry is past its deadline
func (s *MemoryStore) expired(e memEntry) bool {
	return !e.expiresAt.IsZero() && s.nowFunc().After(e.expiresAt)
}

// Get retrieves a live value
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok || s.expired(e) {
		delete(s.items, key) // Drop expired entries lazily
		return "", false, nil
	}
	return e.value, true, nil
}

// Set stores a value with a TTL
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := memEntry{value: value}
	if ttl > 0 {
		e.expiresAt = s.nowFunc().Add(ttl)
	}
	s.items[key] = e
	return nil
}

// Del removes a key
func (s *MemoryStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Expire resets the TTL of an existing key
func (s *MemoryStore) Expire(ctx context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[key]
	if !ok || s.expired(e) {
		return nil // Nothing to extend
	}
	e.expiresAt = s.nowFunc().Add(ttl)
	s.items[key] = e
	return nil
}

// Keys lists live keys matching a glob pattern
func (s *MemoryStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var keys []string
	for k, e := range s.items {
		if s.expired(e) {
			continue
		}
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
