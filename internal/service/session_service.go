package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"hirelens/internal/cache"
	"hirelens/internal/model"
)

// closedSessionRetention keeps closed sessions readable long enough for
// retried close calls to be recognized as idempotent no-ops.
const closedSessionRetention = 24 * time.Hour

// SessionService is the registry for interview session tokens. Tokens are
// cryptographically random capabilities stored in Redis with a TTL; the
// TTL is refreshed on activity, so an abandoned session expires on its own.
type SessionService struct {
	sessionCache cache.SessionCache
	ttl          time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(sessionCache cache.SessionCache, ttl time.Duration) *SessionService {
	return &SessionService{sessionCache: sessionCache, ttl: ttl}
}

// Issue creates the session for an interview. Fails with ErrSessionExists
// when an active session already holds the interview's slot.
func (s *SessionService) Issue(ctx context.Context, interviewID string) (*model.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	ok, err := s.sessionCache.AcquireInterviewSlot(ctx, interviewID, token, s.ttl)
	if err != nil {
		return nil, fmt.Errorf("acquire session slot: %w", err)
	}
	if !ok {
		return nil, ErrSessionExists
	}

	session := &model.Session{
		Token:       token,
		InterviewID: interviewID,
		Status:      model.SessionActive,
		CreatedAt:   time.Now(),
	}
	if err := s.sessionCache.Save(ctx, session, s.ttl); err != nil {
		// Roll back the slot so the interview is not wedged.
		s.sessionCache.ReleaseInterviewSlot(ctx, interviewID)
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Validate resolves a token to its active session. Unknown, expired, and
// already-closed tokens all fail with the same ErrInvalidToken so callers
// cannot probe which case applied.
func (s *SessionService) Validate(ctx context.Context, token string) (*model.Session, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	session, err := s.sessionCache.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if session == nil || session.Status != model.SessionActive {
		return nil, ErrInvalidToken
	}
	return session, nil
}

// Touch extends the session TTL after activity.
func (s *SessionService) Touch(ctx context.Context, token string) error {
	return s.sessionCache.Touch(ctx, token, s.ttl)
}

// Close terminally transitions a session. Closing an already-closed
// session with the same outcome is a no-op; a different outcome is an
// error.
func (s *SessionService) Close(ctx context.Context, token string, outcome model.SessionStatus) error {
	session, err := s.sessionCache.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if session == nil {
		return ErrInvalidToken
	}
	if session.Status == outcome {
		return nil
	}
	if session.Status != model.SessionActive {
		return ErrSessionConflict
	}

	now := time.Now()
	session.Status = outcome
	session.ClosedAt = &now
	if err := s.sessionCache.Save(ctx, session, closedSessionRetention); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return s.sessionCache.ReleaseInterviewSlot(ctx, session.InterviewID)
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
