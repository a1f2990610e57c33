package ratelimit

import (
	"context"
	"sync"
)

// MemoryStore is the in-process counter twin used for tests and DSN-less
// wiring. Counters for past days are never read again, so it also evicts
// nothing.
type MemoryStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counters: make(map[string]int64)}
}

func (s *MemoryStore) IncrementAndGet(_ context.Context, clientKey, group, day string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := counterKey(clientKey, group, day)
	s.counters[key]++
	return s.counters[key], nil
}

func (s *MemoryStore) GetCount(_ context.Context, clientKey, group, day string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counters[counterKey(clientKey, group, day)], nil
}

var _ CounterStore = (*MemoryStore)(nil)
