package persistence

import (
	"context"
	"time"
)

// Lock is a held lease on a key
type Lock interface {
	Release(ctx context.Context) error
}

// Locker hands out short-lived exclusive leases. Obtain returns
// errs.ErrLockNotObtained when another holder owns the key.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error)
}
