package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashankj99/med-o-sys-api-auth/domain"
)

// RedisOTPThrottle implements domain.OTPThrottle with Redis-based resend
// throttling, keyed by mobile number.
type RedisOTPThrottle struct {
	client *redis.Client
	window time.Duration
}

// NewOTPThrottle creates a new OTP resend throttle.
func NewOTPThrottle(client *redis.Client, window time.Duration) domain.OTPThrottle {
	return &RedisOTPThrottle{client: client, window: window}
}

func throttleKey(mobile string) string {
	return fmt.Sprintf("otp:res:%s", mobile)
}

// Allow implements domain.OTPThrottle
func (t *RedisOTPThrottle) Allow(ctx context.Context, mobile string) (bool, int64, error) {
	ttl, err := t.client.TTL(ctx, throttleKey(mobile)).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check resend TTL: %w", err)
	}

	// TTL <= 0 means the key does not exist or has expired.
	if ttl <= 0 {
		return true, 0, nil
	}
	return false, int64(ttl.Seconds()), nil
}

// Mark implements domain.OTPThrottle
func (t *RedisOTPThrottle) Mark(ctx context.Context, mobile string) error {
	if err := t.client.Set(ctx, throttleKey(mobile), 1, t.window).Err(); err != nil {
		return fmt.Errorf("failed to set resend throttle: %w", err)
	}
	return nil
}
