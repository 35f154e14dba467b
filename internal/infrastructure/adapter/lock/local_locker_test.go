package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	errs "github.com/claimsy/karma/internal/domain/error"
	mocks "github.com/claimsy/karma/mocks/port/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_ExclusiveUntilRelease(t *testing.T) {
	clock := mocks.NewMockTimeProvider(t)
	clock.On("Now").Return(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	locker := NewLocalLocker(clock)
	ctx := context.Background()

	lease, err := locker.Obtain(ctx, "reset:1:2026-03", time.Minute)
	require.NoError(t, err)

	_, err = locker.Obtain(ctx, "reset:1:2026-03", time.Minute)
	assert.ErrorIs(t, err, errs.ErrLockNotObtained)

	other, err := locker.Obtain(ctx, "reset:2:2026-03", time.Minute)
	require.NoError(t, err)
	require.NoError(t, other.Release(ctx))

	require.NoError(t, lease.Release(ctx))
	again, err := locker.Obtain(ctx, "reset:1:2026-03", time.Minute)
	require.NoError(t, err)
	assert.NoError(t, again.Release(ctx))
}

func TestLocalLocker_ExpiredLeaseCanBeTakenOver(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	clock := mocks.NewMockTimeProvider(t)
	clock.On("Now").Return(start).Once()
	clock.On("Now").Return(start.Add(2 * time.Minute)).Once()
	locker := NewLocalLocker(clock)
	ctx := context.Background()

	stale, err := locker.Obtain(ctx, "reset:1:2026-03", time.Minute)
	require.NoError(t, err)

	fresh, err := locker.Obtain(ctx, "reset:1:2026-03", time.Minute)
	require.NoError(t, err)

	// Releasing the stale lease must not free the new holder's key
	require.NoError(t, stale.Release(ctx))
	assert.Same(t, fresh, locker.held["reset:1:2026-03"])
}

func TestLocalLocker_OneWinnerUnderContention(t *testing.T) {
	clock := mocks.NewMockTimeProvider(t)
	clock.On("Now").Return(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	locker := NewLocalLocker(clock)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := locker.Obtain(context.Background(), "reset:all", time.Minute); err == nil {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestLocalLocker_CanceledContext(t *testing.T) {
	locker := NewLocalLocker(mocks.NewMockTimeProvider(t))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := locker.Obtain(ctx, "key", time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}
