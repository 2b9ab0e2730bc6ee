package infra_memory_session

import (
	"context"
	"sync"
	"time"

	"github.com/humanbelnik/oscarparty/internal/model"
)

type entry struct {
	session   model.Session
	expiresAt time.Time
}

// Store is the process-local session store used when no redis is
// configured. Sessions are copied on the way in and out.
type Store struct {
	mu      sync.Mutex
	entries map[model.SessionToken]entry
	ttl     time.Duration
	now     func() time.Time
}

func New(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[model.SessionToken]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Save(_ context.Context, sess model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[sess.Token] = entry{
		session:   clone(sess),
		expiresAt: s.now().Add(s.ttl),
	}
	s.evictLocked()
	return nil
}

// Update overwrites a live session only. It reports false when the token
// was deleted or has expired, and writes nothing in that case.
func (s *Store) Update(_ context.Context, sess model.Session) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[sess.Token]
	if !ok || !s.now().Before(e.expiresAt) {
		delete(s.entries, sess.Token)
		return false, nil
	}
	s.entries[sess.Token] = entry{
		session:   clone(sess),
		expiresAt: s.now().Add(s.ttl),
	}
	return true, nil
}

func (s *Store) Load(_ context.Context, token model.SessionToken) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return nil, nil
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, token)
		return nil, nil
	}
	out := clone(e.session)
	return &out, nil
}

func (s *Store) Delete(_ context.Context, token model.SessionToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, token)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store) evictLocked() {
	now := s.now()
	for k, e := range s.entries {
		if !now.Before(e.expiresAt) {
			delete(s.entries, k)
		}
	}
}

func clone(sess model.Session) model.Session {
	votes := make(map[model.CategoryID]model.NomineeID, len(sess.Ballot.Votes))
	for k, v := range sess.Ballot.Votes {
		votes[k] = v
	}
	sess.Ballot.Votes = votes
	return sess
}
