// Package session holds the one pending extraction staged per user
// between OCR submission and confirmation.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/catetin/catetin/internal/model"
)

// DefaultTTL bounds how long a staged extraction may sit unconfirmed.
const DefaultTTL = 10 * time.Minute

// Store keeps at most one live extraction session per user. Per-user
// operations are independent; there is no global lock across users.
// Put overwrites any prior pending session for the same user: the last
// OCR submission wins.
type Store struct {
	now      func() time.Time
	sessions sync.Map // user ID -> *model.ExtractionSession
	ttl      time.Duration
}

// NewStore creates a session store. A non-positive ttl falls back to
// DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		ttl: ttl,
		now: time.Now,
	}
}

// Put stages candidates for a user, superseding any prior session.
// A session is never created with zero candidates; callers must treat
// that as a failed extraction instead.
func (s *Store) Put(userID int64, candidates []model.CandidateRecord) *model.ExtractionSession {
	if len(candidates) == 0 {
		return nil
	}
	sess := &model.ExtractionSession{
		ID:         uuid.NewString(),
		UserID:     userID,
		Candidates: candidates,
		State:      model.StatePendingConfirmation,
		CreatedAt:  s.now(),
	}
	s.sessions.Store(userID, sess)
	return sess
}

// Peek returns the live session for a user without consuming it, or nil.
func (s *Store) Peek(userID int64) *model.ExtractionSession {
	v, ok := s.sessions.Load(userID)
	if !ok {
		return nil
	}
	sess := v.(*model.ExtractionSession)
	if s.expired(sess) {
		s.sessions.Delete(userID)
		return nil
	}
	return sess
}

// Take removes and returns the live session for a user, or nil if none
// exists. Read-and-clear is atomic per key.
func (s *Store) Take(userID int64) *model.ExtractionSession {
	v, ok := s.sessions.LoadAndDelete(userID)
	if !ok {
		return nil
	}
	sess := v.(*model.ExtractionSession)
	if s.expired(sess) {
		return nil
	}
	return sess
}

// MarkAwaitingCorrection discards the staged candidates and moves the
// session into the awaiting-correction state. The user's next free-text
// message is authoritative, not merged with the stale OCR guess.
// Returns false when no live session exists.
func (s *Store) MarkAwaitingCorrection(userID int64) bool {
	sess := s.Peek(userID)
	if sess == nil {
		return false
	}
	s.sessions.Store(userID, &model.ExtractionSession{
		ID:        sess.ID,
		UserID:    userID,
		State:     model.StateAwaitingCorrection,
		CreatedAt: sess.CreatedAt,
	})
	return true
}

// Drop discards any session for the user. Returns true if one existed.
func (s *Store) Drop(userID int64) bool {
	_, ok := s.sessions.LoadAndDelete(userID)
	return ok
}

// ExpireOlderThan removes sessions older than the given age and returns
// how many were removed.
func (s *Store) ExpireOlderThan(age time.Duration) int {
	cutoff := s.now().Add(-age)
	removed := 0
	s.sessions.Range(func(key, value any) bool {
		sess := value.(*model.ExtractionSession)
		if sess.CreatedAt.Before(cutoff) {
			s.sessions.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// StartJanitor periodically expires stale sessions until the context is
// canceled. Expiry is advisory cleanup; there is no in-flight work to
// cancel.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := s.ExpireOlderThan(s.ttl); removed > 0 {
					slog.Debug("Expired stale extraction sessions", "count", removed)
				}
			}
		}
	}()
}

func (s *Store) expired(sess *model.ExtractionSession) bool {
	return s.now().Sub(sess.CreatedAt) > s.ttl
}
