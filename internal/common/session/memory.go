package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore menyimpan sesi di memori proses. State disalin lewat JSON supaya
// pemanggil tidak berbagi slice dengan isi store.
type MemoryStore[T any] struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore[T any](ttl time.Duration) *MemoryStore[T] {
	return &MemoryStore[T]{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore[T]) Get(_ context.Context, id string) (T, error) {
	var v T
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && s.expired(e) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return v, ErrNotFound
	}
	err := json.Unmarshal(e.data, &v)
	return v, err
}

func (s *MemoryStore[T]) Put(_ context.Context, id string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e := memoryEntry{data: data}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	s.entries[id] = e
	return nil
}

func (s *MemoryStore[T]) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

func (s *MemoryStore[T]) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && s.now().After(e.expires)
}
