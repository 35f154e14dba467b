package middleware

import (
	"net/http"

	domainerr "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

const limiterPrefix = "claimsy:ratelimit"

// NewLimiter builds a per-minute limiter. With a redis client the counters are
// shared between instances, otherwise they live in process memory.
func NewLimiter(perMinute int64, rdb *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formatPerMinute(perMinute))
	if err != nil {
		return nil, err
	}

	var store limiter.Store
	if rdb != nil {
		store, err = sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: limiterPrefix})
		if err != nil {
			return nil, err
		}
	} else {
		store = memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix})
	}
	return limiter.New(store, rate), nil
}

// RateLimit limits requests per authenticated member, or per client ip before authentication
func RateLimit(l *limiter.Limiter, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if member, ok := CurrentMember(c); ok {
			key = "member:" + dto.FormatID(member.ID)
		}

		lctx, err := l.Get(c.Request.Context(), key)
		if err != nil {
			logger.Error("Failed to get rate limit context", map[string]any{
				"key":   key,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.Fail(domainerr.ErrorCode(domainerr.ErrInternalServer), "Internal server error during rate limit check"))
			return
		}

		c.Header("X-RateLimit-Limit", dto.FormatID(lctx.Limit))
		c.Header("X-RateLimit-Remaining", dto.FormatID(lctx.Remaining))

		if lctx.Reached {
			logger.Warn("Rate limit exceeded", map[string]any{
				"key":   key,
				"limit": lctx.Limit,
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.Fail(domainerr.ErrorCode(domainerr.ErrRateLimited), "Too many requests. Please try again later."))
			return
		}

		c.Next()
	}
}

func formatPerMinute(perMinute int64) string {
	if perMinute <= 0 {
		perMinute = 30
	}
	return dto.FormatID(perMinute) + "-M"
}
