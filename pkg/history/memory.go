package history

import (
	"context"
	"sync"
)

// MemoryStore keeps recent places in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	recent map[string]Recent
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recent: make(map[string]Recent)}
}

func (s *MemoryStore) Recent(_ context.Context, visitor string) (Recent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(Recent(nil), s.recent[visitor]...), nil
}

func (s *MemoryStore) Save(_ context.Context, visitor string, r Recent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(r) == 0 {
		delete(s.recent, visitor)
		return nil
	}
	s.recent[visitor] = append(Recent(nil), r...)
	return nil
}
