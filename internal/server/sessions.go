package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Zachdehooge/phenology-viewer/internal/viewer"
)

const (
	DefaultSessionTTL  = 12 * time.Hour
	DefaultMaxSessions = 10000
)

type session struct {
	display  *viewer.Display
	lastUsed time.Time
}

// SessionStore keeps the display state of each open page. Sessions idle for
// longer than ttl are dropped, and the store never holds more than max
// sessions; the least recently used one is evicted to make room.
type SessionStore struct {
	sessions map[string]*session
	ttl      time.Duration
	max      int
	now      func() time.Time
	mu       sync.Mutex
}

func NewSessionStore(ttl time.Duration, max int) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if max <= 0 {
		max = DefaultMaxSessions
	}
	return &SessionStore{
		sessions: make(map[string]*session),
		ttl:      ttl,
		max:      max,
		now:      time.Now,
	}
}

// With runs fn on the display of sessionID while holding the store lock. An
// unknown, expired or empty id starts a new session in the initial display
// state; the id actually used is returned.
func (s *SessionStore) With(sessionID string, fn func(*viewer.Display) error) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[sessionID]
	if ok && now.Sub(sess.lastUsed) > s.ttl {
		delete(s.sessions, sessionID)
		ok = false
	}
	if !ok {
		s.sweepLocked(now)
		for len(s.sessions) >= s.max {
			s.evictOldestLocked()
		}
		sessionID = uuid.NewString()
		sess = &session{display: viewer.NewDisplay()}
		s.sessions[sessionID] = sess
	}
	sess.lastUsed = now
	return sessionID, fn(sess.display)
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were removed.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked(s.now())
}

func (s *SessionStore) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *SessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   time.Time
	)
	for id, sess := range s.sessions {
		if oldestID == "" || sess.lastUsed.Before(oldest) {
			oldestID, oldest = id, sess.lastUsed
		}
	}
	delete(s.sessions, oldestID)
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}
