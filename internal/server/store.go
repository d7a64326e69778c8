package server

import (
	"sync"
	"time"
)

// Store owns the current session aggregate. The single mutex linearizes every
// session-touching operation: round counter updates, elimination ranks, and
// the round-close decision all happen inside one Update call.
//
// The current pointer is the reified "only one active session" invariant; a
// reset supersedes the old session instead of deleting it.
type Store struct {
	mu      sync.Mutex
	nextID  uint
	current *Session
	past    []*Session
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

// Update runs fn against the current session under the store lock. Returns
// errNoActiveSession when no session exists.
func (s *Store) Update(fn func(session *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return errNoActiveSession
	}
	return fn(s.current)
}

// View is Update for reads; fn must not mutate the session.
func (s *Store) View(fn func(session *Session) error) error {
	return s.Update(fn)
}

// HasSession reports whether a current session exists.
func (s *Store) HasSession() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

type sessionConfig struct {
	SensitivityLevel int
	BasePoints       int
	RestSeconds      int
}

// Reset supersedes the current session (if any) with a fresh WAITING one.
// The prior session is retained for history, never deleted.
func (s *Store) Reset(cfg sessionConfig, now time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.IsActive = false
		s.past = append(s.past, s.current)
	}
	session := &Session{
		ID:               s.nextID,
		IsActive:         true,
		State:            stateWaiting,
		SensitivityLevel: cfg.SensitivityLevel,
		BasePoints:       cfg.BasePoints,
		RestSeconds:      cfg.RestSeconds,
		CreatedAt:        now,
	}
	s.nextID++
	s.current = session
	return session
}

// Install replaces the current session with one restored from the database.
func (s *Store) Install(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.current.IsActive = false
		s.past = append(s.past, s.current)
	}
	if session.ID >= s.nextID {
		s.nextID = session.ID + 1
	}
	s.current = session
}
