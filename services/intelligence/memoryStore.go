// File: services/intelligence/memoryStore.go
package ai

import (
	"context"
	"sync"

	"estately/models"
)

// InMemorySessionStore is a map-backed SessionStore. Used by tests and by
// local development without Redis.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.ChatSession
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]models.ChatSession)}
}

func (s *InMemorySessionStore) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return &models.ChatSession{SessionID: sessionID}, nil
	}
	copied := sess
	return &copied, nil
}

func (s *InMemorySessionStore) Put(ctx context.Context, sessionID string, slots models.Slots, language string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = models.ChatSession{
		SessionID: sessionID,
		Slots:     slots,
		Language:  language,
	}
	return nil
}

// InMemoryMemoryStore is a map-backed MemoryStore for tests.
type InMemoryMemoryStore struct {
	mu    sync.Mutex
	notes map[string][]string
}

func NewInMemoryMemoryStore() *InMemoryMemoryStore {
	return &InMemoryMemoryStore{notes: make(map[string][]string)}
}

func (s *InMemoryMemoryStore) Save(ctx context.Context, sessionID, note string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes[sessionID] = append(s.notes[sessionID], note)
	return nil
}

func (s *InMemoryMemoryStore) List(ctx context.Context, sessionID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.notes[sessionID]...), nil
}
