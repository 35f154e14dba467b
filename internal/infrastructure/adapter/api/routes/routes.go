package routes

import (
	"slices"
	"time"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/dto"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/handler"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// Handlers groups the HTTP handlers of the service
type Handlers struct {
	Transaction *handler.TransactionHandler
	Balance     *handler.BalanceHandler
	Cron        *handler.CronHandler
	Health      *handler.HealthHandler
}

// Guards groups the authentication and throttling middlewares
type Guards struct {
	Auth        gin.HandlerFunc
	CronAuth    gin.HandlerFunc
	SendLimiter *limiter.Limiter // Nil disables rate limiting
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, g Guards, logger coreport.Logger) {
	router.GET("/healthz", h.Health.Health)

	router.POST("/cron/monthly-reset", g.CronAuth, h.Cron.MonthlyReset)

	member := router.Group("/", g.Auth)

	transactions := member.Group("/transactions")
	{
		send := []gin.HandlerFunc{}
		if g.SendLimiter != nil {
			send = append(send, middleware.RateLimit(g.SendLimiter, logger))
		}
		transactions.POST("", append(send, h.Transaction.Send)...)
		transactions.GET("", h.Transaction.List)
		transactions.POST("/validate", h.Transaction.Validate)
		transactions.GET("/:id", h.Transaction.Get)
	}

	balance := member.Group("/balance")
	{
		balance.GET("", h.Balance.GetBalance)
		balance.GET("/daily-limit", h.Balance.GetDailyLimit)
		balance.POST("/reset", h.Balance.Reset)
		balance.GET("/reset", h.Balance.ResetHistory)
	}

	member.GET("/leaderboard", h.Transaction.Leaderboard)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, allowedOrigins []string) {
	dto.RegisterJSONFieldNames()

	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(allowedOrigins)))
}

func corsConfig(allowedOrigins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}
	config.AddAllowHeaders("Authorization", handler.IdempotencyKeyHeader, middleware.RequestIDHeader, middleware.CronSecretHeader)
	config.AddExposeHeaders(middleware.RequestIDHeader, "X-RateLimit-Limit", "X-RateLimit-Remaining")
	config.MaxAge = 12 * time.Hour
	return config
}
