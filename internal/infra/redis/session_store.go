package redis

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"quiz-studio/internal/app"
)

// SessionStore is a Redis-aware implementation of SessionRepository.
// Notes:
//   - Sessions themselves stay in a local map; the state machine is not
//     serialised across instances.
//   - Redis marks session liveness with a TTL so operators can count active
//     plays across instances (SCAN quiz:session:*).
//   - Once the liveness key has expired the local session is abandoned: Get
//     drops it and Sweep removes the ones nobody asks for again.
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.QuizSession
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.QuizSession),
	}
}

func (s *SessionStore) Put(sessionID string, session *app.QuizSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = session
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), session.QuizID(), s.ttl).Err()
}

// Get returns a local session and refreshes its liveness marker. A session
// whose marker already expired is dropped. Redis errors keep the session.
func (s *SessionStore) Get(sessionID string) (*app.QuizSession, bool) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok || s.ttl <= 0 {
		return session, ok
	}
	alive, err := s.client.Expire(context.Background(), s.key(sessionID), s.ttl).Result()
	if err == nil && !alive {
		s.drop(sessionID)
		return nil, false
	}
	return session, true
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

// Sweep drops local sessions whose liveness marker is gone and returns how
// many were removed.
func (s *SessionStore) Sweep(ctx context.Context) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.RLock()
	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range ids {
		n, err := s.client.Exists(ctx, s.key(id)).Result()
		if err != nil {
			return removed
		}
		if n == 0 {
			s.drop(id)
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
			s.Sweep(ctx)
		}
	}
}

// Len reports how many sessions are held locally.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *SessionStore) drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func (s *SessionStore) key(sessionID string) string {
	return "quiz:session:" + sessionID
}
