package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jdewit/bettrack/internal/domain"
)

// SessionStore implements domain.SessionStore using Redis string keys with
// JSON-serialized session data. Expiry is delegated to Redis TTLs, so an
// expired session simply stops existing.
//
// Key schema:
//
//	session:{token} - JSON-encoded domain.Session
type SessionStore struct {
	rdb *redis.Client
}

// NewSessionStore creates a SessionStore backed by the given Client.
func NewSessionStore(c *Client) *SessionStore {
	return &SessionStore{rdb: c.Underlying()}
}

func sessionKey(token string) string { return "session:" + token }

// Put stores a session under its token with the given TTL.
func (ss *SessionStore) Put(ctx context.Context, s domain.Session, ttl time.Duration) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("redis: marshal session: %w", err)
	}
	if err := ss.rdb.Set(ctx, sessionKey(s.Token), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis: set session: %w", err)
	}
	return nil
}

// Get retrieves a session by token. It returns domain.ErrNotFound when the
// key does not exist or has expired.
func (ss *SessionStore) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := ss.rdb.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Session{}, domain.ErrNotFound
		}
		return domain.Session{}, fmt.Errorf("redis: get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return domain.Session{}, fmt.Errorf("redis: unmarshal session: %w", err)
	}
	return s, nil
}

// Delete removes a session, signing the user out everywhere this token was
// used.
func (ss *SessionStore) Delete(ctx context.Context, token string) error {
	if err := ss.rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("redis: delete session: %w", err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.SessionStore = (*SessionStore)(nil)
