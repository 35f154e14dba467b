package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/infrastructure/adapter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyUsageRepository_IncrementAccumulatesPerDay(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewDailyUsageRepository(db, realClock, noopLogger)
	ctx := context.Background()

	morning := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)

	sent, err := repo.GetAmountSent(ctx, 10, morning)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sent)

	require.NoError(t, repo.Increment(ctx, 10, morning, 20))
	require.NoError(t, repo.Increment(ctx, 10, evening, 5))

	sent, err = repo.GetAmountSent(ctx, 10, evening)
	require.NoError(t, err)
	assert.Equal(t, int64(25), sent)

	sent, err = repo.GetAmountSent(ctx, 10, nextDay)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sent)

	sent, err = repo.GetAmountSent(ctx, 11, morning)
	require.NoError(t, err)
	assert.Equal(t, int64(0), sent)
}

func TestDailyUsageRepository_DayIsUTC(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewDailyUsageRepository(db, realClock, noopLogger)
	ctx := context.Background()

	tokyo := time.FixedZone("JST", 9*60*60)
	// 2026-03-15 07:00 in Tokyo is still 2026-03-14 in UTC
	local := time.Date(2026, 3, 15, 7, 0, 0, 0, tokyo)
	require.NoError(t, repo.Increment(ctx, 10, local, 10))

	sent, err := repo.GetAmountSent(ctx, 10, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, int64(10), sent)
}
