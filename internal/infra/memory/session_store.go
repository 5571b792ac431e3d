package memory

import (
	"context"
	"sync"
	"time"

	"quiz-studio/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionRepository.
// With a positive ttl, sessions untouched for longer than ttl are treated as
// abandoned: Get stops returning them and Sweep drops them.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	session  *app.QuizSession
	lastSeen time.Time
}

// NewSessionStore keeps sessions until they are deleted.
func NewSessionStore() *SessionStore {
	return NewExpiringSessionStore(0)
}

// NewExpiringSessionStore drops sessions idle for longer than ttl.
func NewExpiringSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *SessionStore) Put(sessionID string, session *app.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = &sessionEntry{session: session, lastSeen: s.now()}
}

// Get returns a live session and refreshes its idle timer.
func (s *SessionStore) Get(sessionID string) (*app.QuizSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.sessions[sessionID]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.sessions, sessionID)
		return nil, false
	}
	entry.lastSeen = now
	return entry.session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports how many sessions are held, including idle ones not yet swept.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops every idle session and returns how many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, entry := range s.sessions {
		if s.expired(entry, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *SessionStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *SessionStore) expired(entry *sessionEntry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(entry.lastSeen) > s.ttl
}
