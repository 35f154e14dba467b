package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
)

// LocalLocker hands out leases within one process. It backs single-instance
// deployments that run without redis.
type LocalLocker struct {
	mu           sync.Mutex
	held         map[string]*localLease
	timeProvider core.TimeProvider
}

// NewLocalLocker creates an in-process locker
func NewLocalLocker(timeProvider core.TimeProvider) *LocalLocker {
	return &LocalLocker{
		held:         make(map[string]*localLease),
		timeProvider: timeProvider,
	}
}

type localLease struct {
	locker    *LocalLocker
	key       string
	expiresAt time.Time
}

// Obtain takes the lease on key. A lease past its ttl can be taken over.
func (l *LocalLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (persistence.Lock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.timeProvider.Now()
	if current, ok := l.held[key]; ok && now.Before(current.expiresAt) {
		return nil, fmt.Errorf("%w: %s", errs.ErrLockNotObtained, key)
	}

	lease := &localLease{locker: l, key: key, expiresAt: now.Add(ttl)}
	l.held[key] = lease
	return lease, nil
}

// Release frees the key unless another holder took it over after expiry
func (lease *localLease) Release(_ context.Context) error {
	l := lease.locker
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[lease.key] == lease {
		delete(l.held, lease.key)
	}
	return nil
}
