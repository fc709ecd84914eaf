package auth

import (
	"time"

	"github.com/esabling477/sura-trading/internal/store"
	"github.com/esabling477/sura-trading/pkg/logger"
	"github.com/esabling477/sura-trading/pkg/metrics"
)

// Session tracks one active refresh token. Using a refresh token rotates the
// stored hash; logout revokes the session outright.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"token_hash"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore defines the interface for session storage
type SessionStore interface {
	Create(session *Session) error
	Validate(sessionID, tokenHash string) (*Session, error)
	Rotate(sessionID, newTokenHash string, newExpiry time.Time) error
	Revoke(sessionID string) error
}

// LocalSessionStore keeps sessions in the terminal's key-value store, one
// blob per session ID.
type LocalSessionStore struct {
	store *store.Store
	now   func() time.Time
}

func NewLocalSessionStore(st *store.Store) *LocalSessionStore {
	return &LocalSessionStore{store: st, now: time.Now}
}

func (s *LocalSessionStore) Create(session *Session) error {
	if err := s.store.Put(store.BucketSessions, session.ID, session); err != nil {
		return err
	}
	s.publishCount()
	return nil
}

// Validate returns the session if it exists, has not expired, and carries
// the given token hash. Expired sessions are cleaned up on sight.
func (s *LocalSessionStore) Validate(sessionID, tokenHash string) (*Session, error) {
	var session Session
	found, err := s.store.Get(store.BucketSessions, sessionID, &session)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	if s.now().After(session.ExpiresAt) {
		if err := s.Revoke(sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if session.TokenHash != tokenHash {
		return nil, nil
	}
	return &session, nil
}

func (s *LocalSessionStore) Rotate(sessionID, newTokenHash string, newExpiry time.Time) error {
	var session Session
	found, err := s.store.Get(store.BucketSessions, sessionID, &session)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}

	session.TokenHash = newTokenHash
	session.ExpiresAt = newExpiry
	return s.store.Put(store.BucketSessions, sessionID, &session)
}

func (s *LocalSessionStore) Revoke(sessionID string) error {
	if err := s.store.Delete(store.BucketSessions, sessionID); err != nil {
		return err
	}
	s.publishCount()
	return nil
}

func (s *LocalSessionStore) publishCount() {
	n, err := s.store.Count(store.BucketSessions)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to count sessions")
		return
	}
	metrics.SetActiveSessions("terminal", n)
}
