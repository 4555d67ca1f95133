package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// RedisResetGrantStore implements domain.ResetGrantStore using Redis. A
// grant expires on its own after the configured TTL, so an abandoned reset
// never stays redeemable.
type RedisResetGrantStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResetGrantStore creates a new reset grant store.
func NewResetGrantStore(client *redis.Client, ttl time.Duration) domain.ResetGrantStore {
	return &RedisResetGrantStore{client: client, ttl: ttl}
}

func grantKey(email string) string {
	return fmt.Sprintf("reset:grant:%s", email)
}

// Grant implements domain.ResetGrantStore
func (s *RedisResetGrantStore) Grant(ctx context.Context, email string) error {
	if err := s.client.Set(ctx, grantKey(email), 1, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to record reset grant: %w", err)
	}
	return nil
}

// Consume implements domain.ResetGrantStore
func (s *RedisResetGrantStore) Consume(ctx context.Context, email string) (bool, error) {
	deleted, err := s.client.Del(ctx, grantKey(email)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, fmt.Errorf("failed to consume reset grant: %w", err)
	}
	return deleted > 0, nil
}
