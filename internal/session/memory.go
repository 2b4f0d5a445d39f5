package session

import (
	"context"
	"sync"

	"github.com/sleepwell/sleepwell/internal/dialog"
)

// MemoryStore is a map-backed session store for tests and development.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]dialog.Session
}

// NewMemory returns an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]dialog.Session)}
}

func (s *MemoryStore) Get(_ context.Context, userID string) (*dialog.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	clone := sess
	return &clone, nil
}

func (s *MemoryStore) Set(_ context.Context, userID string, sess *dialog.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = *sess
	return nil
}
