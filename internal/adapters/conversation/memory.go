// Package conversation provides conversation store adapters.
package conversation

import (
	"context"
	"sort"
	"sync"

	"github.com/0xcro3dile/chatassist/internal/domain/entities"
)

// MemoryStore keeps conversations in process memory. Nothing is ever evicted.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]entities.Turn // userID -> turns
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		turns: make(map[string][]entities.Turn),
	}
}

// Append adds a turn to the end of the user's conversation.
func (s *MemoryStore) Append(ctx context.Context, userID string, turn entities.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns[userID] = append(s.turns[userID], turn)
	return nil
}

// Turns returns a copy of the user's turns.
func (s *MemoryStore) Turns(ctx context.Context, userID string) ([]entities.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.turns[userID]
	out := make([]entities.Turn, len(turns))
	copy(out, turns)
	return out, nil
}

// Users lists known user ids, sorted.
func (s *MemoryStore) Users(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]string, 0, len(s.turns))
	for u := range s.turns {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

// Close is a no-op, present so both stores can be shut down the same way.
func (s *MemoryStore) Close() error {
	return nil
}
