package throttle

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	failKeyPrefix = "throttle:fail:"
	lockKeyPrefix = "throttle:lock:"
)

// RedisStore keeps attempt counters in Redis so the lockout survives restarts
// and is shared across instances. The lock key carries the five-minute TTL;
// the failure counter has none and only a success removes it.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a Redis-backed attempt store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Locked reports whether the email is locked out. The lock key expiring is
// the lazy equivalent of the expiry timestamp passing.
func (s *RedisStore) Locked(ctx context.Context, email string) (bool, error) {
	count, err := s.client.Get(ctx, failKeyPrefix+email).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read failure count: %w", err)
	}
	if count < MaxFailures {
		return false, nil
	}
	locked, err := s.client.Exists(ctx, lockKeyPrefix+email).Result()
	if err != nil {
		return false, fmt.Errorf("read lock: %w", err)
	}
	return locked > 0, nil
}

// RecordAttempt updates the counters for the outcome of a login attempt.
func (s *RedisStore) RecordAttempt(ctx context.Context, email string, success bool) error {
	if success {
		if err := s.client.Del(ctx, failKeyPrefix+email, lockKeyPrefix+email).Err(); err != nil {
			return fmt.Errorf("reset attempts: %w", err)
		}
		return nil
	}

	count, err := s.client.Incr(ctx, failKeyPrefix+email).Result()
	if err != nil {
		return fmt.Errorf("increment failures: %w", err)
	}
	// Only the attempt that crosses the threshold starts the window, so
	// failures past the fifth cannot extend it.
	if count == MaxFailures {
		if err := s.client.Set(ctx, lockKeyPrefix+email, 1, LockoutPeriod).Err(); err != nil {
			return fmt.Errorf("set lock: %w", err)
		}
	}
	return nil
}
