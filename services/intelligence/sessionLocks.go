// File: services/intelligence/sessionLocks.go
package ai

import "sync"

// sessionLocks serializes read-merge-write cycles per session. Two
// simultaneous messages on the same conversation would otherwise race on the
// session store between Get and Put.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for sessionID and returns its release func.
func (s *sessionLocks) acquire(sessionID string) func() {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
