package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"hirelens/internal/model"
)

// SessionCache stores interview sessions in Redis. Sessions expire via
// key TTL, which doubles as the abandoned-session reaper: an idle token
// simply disappears and validation fails closed. The per-interview slot
// key enforces at most one active session per interview.
type SessionCache interface {
	Save(ctx context.Context, session *model.Session, ttl time.Duration) error
	// Get returns (nil, nil) on a miss.
	Get(ctx context.Context, token string) (*model.Session, error)
	Touch(ctx context.Context, token string, ttl time.Duration) error
	// AcquireInterviewSlot reserves the one-active-session slot for an
	// interview. Returns false if a slot is already held.
	AcquireInterviewSlot(ctx context.Context, interviewID, token string, ttl time.Duration) (bool, error)
	ReleaseInterviewSlot(ctx context.Context, interviewID string) error
}

type sessionCache struct {
	client *redis.Client
}

// NewSessionCache creates a new session cache
func NewSessionCache(client *redis.Client) SessionCache {
	return &sessionCache{client: client}
}

func sessionKey(token string) string {
	return "session:" + token
}

func slotKey(interviewID string) string {
	return "interview_session:" + interviewID
}

func (c *sessionCache) Save(ctx context.Context, session *model.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, sessionKey(session.Token), data, ttl).Err()
}

func (c *sessionCache) Get(ctx context.Context, token string) (*model.Session, error) {
	data, err := c.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *sessionCache) Touch(ctx context.Context, token string, ttl time.Duration) error {
	return c.client.Expire(ctx, sessionKey(token), ttl).Err()
}

func (c *sessionCache) AcquireInterviewSlot(ctx context.Context, interviewID, token string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, slotKey(interviewID), token, ttl).Result()
}

func (c *sessionCache) ReleaseInterviewSlot(ctx context.Context, interviewID string) error {
	return c.client.Del(ctx, slotKey(interviewID)).Err()
}
