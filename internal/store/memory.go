package store

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used by tests and as a fallback
// backend when no database path is configured.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	subs map[string][]func(string)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]json.RawMessage),
		subs: make(map[string][]func(string)),
	}
}

func (s *MemoryStore) Read(_ context.Context, key string) (json.RawMessage, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := append(json.RawMessage(nil), doc...)
	return out, true, nil
}

func (s *MemoryStore) Write(_ context.Context, key string, doc json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key] = append(json.RawMessage(nil), doc...)
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key)
	return nil
}

func (s *MemoryStore) Subscribe(key string, fn func(key string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[key] = append(s.subs[key], fn)
}

// FireExternalChange simulates another process touching key. Tests use it
// to exercise the subscription path.
func (s *MemoryStore) FireExternalChange(key string) {
	s.mu.Lock()
	fns := append([]func(string){}, s.subs[key]...)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
}

func (s *MemoryStore) Close() error { return nil }
