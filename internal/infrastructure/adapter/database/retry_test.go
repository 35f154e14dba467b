package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/infrastructure/adapter/logger"
	"github.com/stretchr/testify/assert"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:    3,
		RetryInterval: time.Millisecond,
		MaxInterval:   5 * time.Millisecond,
	}
}

func TestRetryOnTransientError_SucceedsAfterConflicts(t *testing.T) {
	calls := 0
	err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
		calls++
		if calls < 3 {
			return errors.New("deadlock detected")
		}
		return nil
	}, NewErrorMapper(), logger.NewNoopLogger())

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnTransientError_StopsOnPermanentError(t *testing.T) {
	calls := 0
	permanent := errors.New("syntax error at or near")
	err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
		calls++
		return permanent
	}, NewErrorMapper(), logger.NewNoopLogger())

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestRetryOnTransientError_GivesUp(t *testing.T) {
	calls := 0
	err := RetryOnTransientError(context.Background(), fastRetryConfig(), func() error {
		calls++
		return errors.New("connection reset by peer")
	}, NewErrorMapper(), logger.NewNoopLogger())

	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryOnTransientError_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetryConfig()
	cfg.RetryInterval = time.Second
	cfg.MaxInterval = time.Second

	err := RetryOnTransientError(ctx, cfg, func() error {
		return errors.New("deadlock detected")
	}, NewErrorMapper(), logger.NewNoopLogger())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestCalculateBackoffWithJitter(t *testing.T) {
	cfg := RetryConfig{RetryInterval: 10 * time.Millisecond, MaxInterval: 50 * time.Millisecond, JitterFactor: 0.5}

	first := CalculateBackoffWithJitter(0, cfg)
	assert.GreaterOrEqual(t, first, 10*time.Millisecond)
	assert.LessOrEqual(t, first, 15*time.Millisecond)

	capped := CalculateBackoffWithJitter(10, cfg)
	assert.GreaterOrEqual(t, capped, 50*time.Millisecond)
	assert.LessOrEqual(t, capped, 75*time.Millisecond)
}
