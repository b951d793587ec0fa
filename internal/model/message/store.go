package message

import (
	"context"
	"sort"
	"sync"
)

// Store persists contact messages.
type Store interface {
	Save(ctx context.Context, msg Message) error
	// List returns every message, newest first.
	List(ctx context.Context) ([]Message, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// MemoryStore implements Store with an in-memory slice, suitable for tests
// and local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Message
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

// Save appends msg after validating it.
func (s *MemoryStore) Save(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.items = append(s.items, msg)
	s.mu.Unlock()
	return nil
}

// List returns a copy of all messages sorted by CreatedAt descending.
func (s *MemoryStore) List(_ context.Context) ([]Message, error) {
	s.mu.RLock()
	items := make([]Message, 0, len(s.items))
	for i := len(s.items) - 1; i >= 0; i-- {
		items = append(items, s.items[i])
	}
	s.mu.RUnlock()

	// reversed copy plus a stable sort puts later inserts first on ties
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// Len reports how many messages are stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close(context.Context) error { return nil }
