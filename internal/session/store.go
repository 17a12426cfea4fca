// Package session holds the per-browser-session state: the current
// dataset and its profile. State is process-local and transient; a
// re-upload replaces the entry and expiry drops it. The store is passed
// explicitly to every handler, there is no process-wide singleton.
package session

import (
	"sync"
	"time"

	"edascope/domain/core"
	"edascope/domain/dataset"
	"edascope/internal/errors"
	"edascope/internal/profile"
)

// Session is the state bound to one browser session. Gen counts uploads,
// so writes made against a replaced dataset can be detected and dropped.
// Insights holds the full text of completed insight streams by kind, so
// report downloads can embed them; it is cleared on re-upload.
type Session struct {
	ID        core.SessionID
	Gen       uint64
	Dataset   *dataset.Dataset
	Profile   *profile.Profile
	Insights  map[string]string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store is a mutex-guarded in-memory session map with idle expiry
type Store struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*Session
	ttl      time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

// NewStore creates a store whose sessions expire after ttl of inactivity.
// A ttl of zero disables expiry.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[core.SessionID]*Session),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	if ttl > 0 {
		go s.sweep()
	}
	return s
}

// sweep drops idle sessions periodically
func (s *Store) sweep() {
	interval := s.ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-s.ttl)
			s.mu.Lock()
			for id, sess := range s.sessions {
				if sess.UpdatedAt.Before(cutoff) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		case <-s.stop:
			return
		}
	}
}

// Close stops the expiry sweeper
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Put stores a dataset and its profile for the session, replacing any
// previous upload, and returns a snapshot of the new state
func (s *Store) Put(id core.SessionID, ds *dataset.Dataset, prof *profile.Profile) *Session {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &Session{ID: id, CreatedAt: now}
		s.sessions[id] = sess
	}
	sess.Gen++
	sess.Dataset = ds
	sess.Profile = prof
	sess.Insights = nil
	sess.UpdatedAt = now

	snap := *sess
	return &snap
}

// PutInsight records the completed insight text for the session. gen must
// be the upload generation the text was generated against; a stream that
// finishes after a re-upload is discarded rather than cached onto the new
// dataset. Partial streams are never recorded.
func (s *Store) PutInsight(id core.SessionID, gen uint64, kind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Dataset == nil || sess.Gen != gen {
		return
	}
	if sess.Insights == nil {
		sess.Insights = make(map[string]string)
	}
	sess.Insights[kind] = text
	sess.UpdatedAt = time.Now()
}

// Get returns a snapshot of the session state, or a NOT_FOUND error when
// the session has no dataset yet. The snapshot pairs the dataset with the
// profile and insights of the same upload, so handlers can read it without
// holding the store lock while a concurrent re-upload replaces the entry.
func (s *Store) Get(id core.SessionID) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok || sess.Dataset == nil {
		return nil, errors.NotFound("dataset for this session")
	}
	sess.UpdatedAt = time.Now()

	snap := *sess
	if len(sess.Insights) > 0 {
		snap.Insights = make(map[string]string, len(sess.Insights))
		for kind, text := range sess.Insights {
			snap.Insights[kind] = text
		}
	}
	return &snap, nil
}

// Delete removes the session state
func (s *Store) Delete(id core.SessionID) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
