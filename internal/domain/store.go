package domain

import (
	"context"
	"io"
	"time"
)

// BetStore persists bets. Every operation that reads or mutates a bet is
// scoped to its owner; a store must never return or modify another user's
// rows (the per-user access control the hosted backend enforced server-side).
type BetStore interface {
	Insert(ctx context.Context, bet Bet) error
	ListByOwner(ctx context.Context, ownerID string) ([]Bet, error)
	GetByID(ctx context.Context, ownerID, id string) (Bet, error)
	Update(ctx context.Context, ownerID string, bet Bet) error
	Delete(ctx context.Context, ownerID, id string) error
}

// TipStore persists shared tips. Insert returns ErrAlreadyExists when the
// (bet, tipper) pair has been shared before. ListVisible returns tips that
// are public or owned by the given user, joined with their bet and the
// sharer's profile, newest first.
type TipStore interface {
	Insert(ctx context.Context, tip Tip) error
	ListVisible(ctx context.Context, userID string) ([]TipView, error)
	GetByID(ctx context.Context, id string) (Tip, error)
	Delete(ctx context.Context, id string) error
}

// ProfileStore persists the masked public profiles shown on the tips page.
type ProfileStore interface {
	Upsert(ctx context.Context, p Profile) error
	Get(ctx context.Context, id string) (Profile, error)
}

// SessionStore keeps authenticated sessions with a TTL. Get returns
// ErrNotFound for unknown or expired tokens.
type SessionStore interface {
	Put(ctx context.Context, s Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (Session, error)
	Delete(ctx context.Context, token string) error
}

// BetListCache caches a user's full bet list between reads. Implementations
// return ErrNotFound on a miss; writes are best effort and callers treat
// cache failures as non-fatal.
type BetListCache interface {
	Get(ctx context.Context, ownerID string) ([]Bet, error)
	Set(ctx context.Context, ownerID string, bets []Bet) error
	Invalidate(ctx context.Context, ownerID string) error
}

// BlobWriter uploads an object to blob storage, used for history exports.
type BlobWriter interface {
	Put(ctx context.Context, path string, data io.Reader, contentType string) error
}

// BlobInfo describes one stored object, as returned by BlobReader.List.
type BlobInfo struct {
	Path         string    `json:"path"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	LastModified time.Time `json:"last_modified"`
}

// BlobDeleter removes a stored export. Idempotent: deleting a missing
// object is not an error.
type BlobDeleter interface {
	Delete(ctx context.Context, path string) error
}

// BlobReader reads back stored exports. Get returns ErrNotFound when the
// object does not exist.
type BlobReader interface {
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	List(ctx context.Context, prefix string) ([]BlobInfo, error)
}

// LockManager provides coarse mutual exclusion across instances, used to
// serialize per-user export jobs. Acquire returns ErrLockHeld when the key
// is taken; the returned release func is safe to call more than once.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (func(), error)
}

// RateLimiter throttles repeated calls per key. Allow counts the request
// when it is permitted.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}
