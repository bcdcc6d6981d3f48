package cache

import (
	"strings"
	"sync"
)

// Store is a string-keyed byte store. It is passed in explicitly rather
// than held as package state so tests can substitute an isolated
// instance per test.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, payload []byte)
	Delete(key string)
	DeletePrefix(prefix string)
	Clear()
}

// MemoryStore keeps entries for the lifetime of the process. There is
// no eviction besides an explicit Delete/Clear.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.entries[key]
	return payload, ok
}

func (s *MemoryStore) Set(key string, payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = payload
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *MemoryStore) DeletePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string][]byte)
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
