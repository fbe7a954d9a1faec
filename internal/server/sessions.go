package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/jobform"
)

// session is one open form and the last time a request touched it.
type session struct {
	form     jobform.Form
	lastSeen time.Time
}

// sessionStore keeps the current form handle of every open session. Forms
// are values, so an update swaps the stored handle under the lock and
// readers never see a half-applied edit.
type sessionStore struct {
	mu    sync.Mutex
	forms map[uuid.UUID]*session
	now   func() time.Time
}

func newSessionStore() *sessionStore {
	return &sessionStore{
		forms: make(map[uuid.UUID]*session),
		now:   time.Now,
	}
}

// Create stores form under a fresh ID.
func (s *sessionStore) Create(form jobform.Form) uuid.UUID {
	id := uuid.New()
	s.mu.Lock()
	s.forms[id] = &session{form: form, lastSeen: s.now()}
	s.mu.Unlock()
	return id
}

// Get returns the current handle for id.
func (s *sessionStore) Get(id uuid.UUID) (jobform.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.forms[id]
	if !ok {
		return jobform.Form{}, &ErrSessionNotFound{ID: id.String()}
	}
	sess.lastSeen = s.now()
	return sess.form, nil
}

// Update applies fn to the current handle and stores the result. When fn
// fails the stored handle is left as it was.
func (s *sessionStore) Update(id uuid.UUID, fn func(jobform.Form) (jobform.Form, error)) (jobform.Form, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.forms[id]
	if !ok {
		return jobform.Form{}, &ErrSessionNotFound{ID: id.String()}
	}
	sess.lastSeen = s.now()
	next, err := fn(sess.form)
	if err != nil {
		return sess.form, err
	}
	sess.form = next
	return next, nil
}

// Delete drops id. It reports whether the session existed.
func (s *sessionStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[id]; !ok {
		return false
	}
	delete(s.forms, id)
	return true
}

// Sweep drops sessions untouched for longer than ttl and returns how many
// were removed.
func (s *sessionStore) Sweep(ttl time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-ttl)
	removed := 0
	for id, sess := range s.forms {
		if sess.lastSeen.Before(cutoff) {
			delete(s.forms, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of open sessions.
func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.forms)
}
