package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptsPrefix = "audit-tracker:login-failures:"

// LoginAttempts counts failed logins per email in Redis.
type LoginAttempts struct {
	client  *redis.Client
	max     int64
	lockout time.Duration
}

// NewLoginAttempts builds a counter that locks an email after max failures
// until lockout has passed since the most recent failure.
func NewLoginAttempts(client *redis.Client, max int, lockout time.Duration) *LoginAttempts {
	if max <= 0 {
		max = 5
	}
	if lockout <= 0 {
		lockout = 15 * time.Minute
	}
	return &LoginAttempts{client: client, max: int64(max), lockout: lockout}
}

// Locked reports whether email has reached the failure limit.
func (l *LoginAttempts) Locked(ctx context.Context, email string) (bool, error) {
	count, err := l.client.Get(ctx, attemptsKey(email)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= l.max, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (l *LoginAttempts) RecordFailure(ctx context.Context, email string) (int64, error) {
	key := attemptsKey(email)
	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, l.lockout)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// Reset clears the counter after a successful login.
func (l *LoginAttempts) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, attemptsKey(email)).Err()
}

func attemptsKey(email string) string {
	return loginAttemptsPrefix + strings.ToLower(strings.TrimSpace(email))
}
