package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to redis, retrying the initial ping with exponential backoff
func NewRedisClient(ctx context.Context, conf config.RedisConfig, attempts int, logger core.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Addr,
		Password: conf.Password,
		DB:       conf.DB,
	})

	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = client.Ping(ctx).Err(); err == nil {
			logger.Info("Connected to redis", map[string]any{
				"addr":    conf.Addr,
				"attempt": attempt,
			})
			return client, nil
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		logger.Warn("Failed to connect to redis", map[string]any{
			"addr":        conf.Addr,
			"attempt":     attempt,
			"error":       err,
			"retry_after": sleep.String(),
		})
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(sleep):
		case <-ctx.Done():
			_ = client.Close()
			return nil, ctx.Err()
		}
	}

	_ = client.Close()
	return nil, fmt.Errorf("failed to connect to redis at %s after %d attempts: %w", conf.Addr, attempts, err)
}
