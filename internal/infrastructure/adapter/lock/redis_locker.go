package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "claimsy:lock:"

// RedisLocker hands out leases shared by every instance connected to the same redis
type RedisLocker struct {
	client *redislock.Client
	logger core.Logger
}

// NewRedisLocker creates a locker on top of a redis client
func NewRedisLocker(rdb redis.UniversalClient, logger core.Logger) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		logger: logger,
	}
}

// Obtain takes the lease on key without waiting
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (persistence.Lock, error) {
	lock, err := l.client.Obtain(ctx, keyPrefix+key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		l.logger.Info("Lock held elsewhere", map[string]any{"key": key})
		return nil, fmt.Errorf("%w: %s", errs.ErrLockNotObtained, key)
	}
	if err != nil {
		l.logger.Error("Error obtaining lock", map[string]any{
			"key":   key,
			"error": err,
		})
		return nil, fmt.Errorf("obtaining lock %s: %w", key, err)
	}
	return &redisLease{lock: lock, key: key, logger: l.logger}, nil
}

type redisLease struct {
	lock   *redislock.Lock
	key    string
	logger core.Logger
}

// Release gives the lease back. An expired lease is not an error.
func (r *redisLease) Release(ctx context.Context) error {
	err := r.lock.Release(ctx)
	if errors.Is(err, redislock.ErrLockNotHeld) {
		r.logger.Warn("Lock expired before release", map[string]any{"key": r.key})
		return nil
	}
	return err
}
