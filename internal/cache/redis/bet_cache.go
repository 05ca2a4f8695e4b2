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

const betListTTL = 5 * time.Minute

// BetListCache implements domain.BetListCache using one Redis key per user
// holding the JSON-serialized full bet list. The list is small (a personal
// tracker, not a feed), so whole-list caching keeps the dashboard reads to a
// single round trip.
//
// Key schema:
//
//	bets:{ownerID} - JSON array of domain.Bet
type BetListCache struct {
	rdb *redis.Client
}

// NewBetListCache creates a BetListCache backed by the given Client.
func NewBetListCache(c *Client) *BetListCache {
	return &BetListCache{rdb: c.Underlying()}
}

func betListKey(ownerID string) string { return "bets:" + ownerID }

// Get retrieves a user's cached bet list. It returns domain.ErrNotFound on a
// cache miss.
func (bc *BetListCache) Get(ctx context.Context, ownerID string) ([]domain.Bet, error) {
	data, err := bc.rdb.Get(ctx, betListKey(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis: get bet list %s: %w", ownerID, err)
	}

	var bets []domain.Bet
	if err := json.Unmarshal(data, &bets); err != nil {
		return nil, fmt.Errorf("redis: unmarshal bet list %s: %w", ownerID, err)
	}
	return bets, nil
}

// Set stores a user's bet list with a 5-minute TTL.
func (bc *BetListCache) Set(ctx context.Context, ownerID string, bets []domain.Bet) error {
	data, err := json.Marshal(bets)
	if err != nil {
		return fmt.Errorf("redis: marshal bet list %s: %w", ownerID, err)
	}
	if err := bc.rdb.Set(ctx, betListKey(ownerID), data, betListTTL).Err(); err != nil {
		return fmt.Errorf("redis: set bet list %s: %w", ownerID, err)
	}
	return nil
}

// Invalidate drops a user's cached list after any write to their bets.
func (bc *BetListCache) Invalidate(ctx context.Context, ownerID string) error {
	if err := bc.rdb.Del(ctx, betListKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis: invalidate bet list %s: %w", ownerID, err)
	}
	return nil
}

// Compile-time interface check.
var _ domain.BetListCache = (*BetListCache)(nil)
