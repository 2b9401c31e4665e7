package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptLimiter throttles repeated failed sign-ins for one staff ID.
type AttemptLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Fail(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

const attemptPrefix = "signin_attempts:"

// RedisAttemptLimiter counts failures in a fixed window keyed by staff ID.
type RedisAttemptLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisAttemptLimiter builds a limiter. maxAttempts <= 0 disables throttling.
func NewRedisAttemptLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisAttemptLimiter {
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &RedisAttemptLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether another attempt may be made.
func (l *RedisAttemptLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	count, err := l.client.Get(ctx, attemptPrefix+key).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return true, nil
		}
		return true, err
	}
	return count < l.maxAttempts, nil
}

// Fail records a failed attempt, starting the window on the first one.
func (l *RedisAttemptLimiter) Fail(ctx context.Context, key string) error {
	if l.maxAttempts <= 0 {
		return nil
	}
	redisKey := attemptPrefix + key
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return err
	}
	if count == 1 {
		return l.client.Expire(ctx, redisKey, l.window).Err()
	}
	return nil
}

// Reset clears the failure counter after a successful sign-in.
func (l *RedisAttemptLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, attemptPrefix+key).Err()
}

// NoopAttemptLimiter never throttles.
type NoopAttemptLimiter struct{}

func (NoopAttemptLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (NoopAttemptLimiter) Fail(context.Context, string) error          { return nil }
func (NoopAttemptLimiter) Reset(context.Context, string) error         { return nil }
