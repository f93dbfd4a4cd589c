package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedTokenPrefix = "workouts:revoked_token:"

// SessionRepository tracks revoked bearer tokens until they would have expired anyway.
type SessionRepository interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) SessionRepository {
	return &redisSessionRepository{rdb: rdb}
}

func (r *redisSessionRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired, nothing to remember
	}
	if err := r.rdb.Set(ctx, revokedTokenPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Revoke: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedTokenPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redisSessionRepository.IsRevoked: %w", err)
	}
	return n > 0, nil
}
