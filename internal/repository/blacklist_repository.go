package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "blacklist:"

// BlacklistRepository records revoked tokens keyed by their literal value.
// Entries are never deleted explicitly; the store's own expiry removes them
// exactly when the protected token would have expired anyway.
type BlacklistRepository interface {
	// Add marks the token revoked for the given remaining lifetime. A
	// non-positive lifetime is a no-op: an already expired token needs no guard.
	Add(ctx context.Context, token string, remaining time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
	// RemainingTTL reports how long the entry stays in the store. Used by
	// operational checks; -2 semantics of Redis are normalized to zero.
	RemainingTTL(ctx context.Context, token string) (time.Duration, error)
}

type blacklistRepository struct {
	client *redis.Client
}

// NewBlacklistRepository returns a Redis-backed blacklist.
func NewBlacklistRepository(client *redis.Client) BlacklistRepository {
	return &blacklistRepository{client: client}
}

func (r *blacklistRepository) Add(ctx context.Context, token string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	return r.client.Set(ctx, blacklistKeyPrefix+token, "true", remaining).Err()
}

func (r *blacklistRepository) Contains(ctx context.Context, token string) (bool, error) {
	exists, err := r.client.Exists(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (r *blacklistRepository) RemainingTTL(ctx context.Context, token string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, blacklistKeyPrefix+token).Result()
	if err != nil {
		return 0, err
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}
