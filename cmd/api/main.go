package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/domain/usecase/allowance"
	"github.com/claimsy/karma/internal/domain/usecase/member"
	"github.com/claimsy/karma/internal/domain/usecase/transaction"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/handler"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/middleware"
	"github.com/claimsy/karma/internal/infrastructure/adapter/api/routes"
	"github.com/claimsy/karma/internal/infrastructure/adapter/database"
	"github.com/claimsy/karma/internal/infrastructure/adapter/idgen"
	"github.com/claimsy/karma/internal/infrastructure/adapter/lock"
	"github.com/claimsy/karma/internal/infrastructure/adapter/logger"
	timeProvider "github.com/claimsy/karma/internal/infrastructure/adapter/time"
	"github.com/claimsy/karma/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// production config emits JSON; "console" is for local runs
	appLogger := logger.NewZapLogger(cfg.Logger.Format != "console")
	appLogger.SetLevel(coreport.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()

	tp := timeProvider.NewRealTimeProvider()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	dbManager := database.NewManager(database.FromAppConfig(cfg), appLogger, tp)
	if _, err := dbManager.Connect(ctx); err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	defer func() { _ = dbManager.Close() }()

	if err := dbManager.Migrate(ctx); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	uow := dbManager.CreateUnitOfWork()

	// Redis is optional; without it locks and rate limits are per process
	var rdb *redis.Client
	var locker persistence.Locker = lock.NewLocalLocker(tp)
	if cfg.Redis.Enabled() {
		rdb, err = lock.NewRedisClient(ctx, cfg.Redis, 3, appLogger)
		if err != nil {
			appLogger.Error("Failed to connect to redis", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer func() { _ = rdb.Close() }()
		locker = lock.NewRedisLocker(rdb, appLogger)
	} else {
		appLogger.Warn("Redis not configured, using in-process locks", nil)
	}

	ids, err := idgen.NewSnowflakeGenerator(cfg.Snowflake.NodeID)
	if err != nil {
		appLogger.Error("Failed to create id generator", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// Use cases
	transactionService := transaction.NewTransactionService(uow, ids, tp, appLogger, transaction.Config{
		MaxRetries:              cfg.Transaction.MaxRetries,
		RetryBaseDelay:          coreport.Duration(cfg.Transaction.RetryBaseDelayMs) * coreport.Millisecond,
		WarningThresholdPercent: cfg.Transaction.WarningThresholdPercent,
		EnforceDepartmentRule:   cfg.Transaction.EnforceDepartmentRule,
		MaxMessageLength:        cfg.Transaction.MaxMessageLength,
	})
	memberUseCase := member.NewMemberUseCase(uow, tp, appLogger)
	resetService := allowance.NewResetService(uow, locker, ids, tp, appLogger, cfg.Reset.LockTTL)

	if cfg.Seed.Enabled {
		if err := memberUseCase.SeedDemoWorkspace(ctx); err != nil {
			appLogger.Error("Failed to seed demo workspace", map[string]any{"error": err.Error()})
		}
	}

	if cfg.Reset.Enabled {
		scheduler := allowance.NewScheduler(resetService, tp, appLogger, cfg.Reset.HourUTC, cfg.Reset.RunOnStartup)
		go scheduler.ScheduleMonthlyReset(ctx)
	}

	sendLimiter, err := middleware.NewLimiter(cfg.RateLimit.TransactionsPerMinute, rdb)
	if err != nil {
		appLogger.Error("Failed to create rate limiter", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// HTTP
	cronAuthorizer := middleware.NewCronAuthorizer(cfg.Cron.Secret, cfg.Cron.TrustedHeader)
	handlers := routes.Handlers{
		Transaction: handler.NewTransactionHandler(transactionService, transactionService, appLogger),
		Balance:     handler.NewBalanceHandler(memberUseCase, transactionService, resetService, cronAuthorizer, appLogger),
		Cron:        handler.NewCronHandler(resetService, appLogger),
		Health:      handler.NewHealthHandler(dbManager, appLogger),
	}
	guards := routes.Guards{
		Auth:        middleware.Auth(middleware.NewTokenVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer), memberUseCase, appLogger),
		CronAuth:    middleware.CronAuth(cronAuthorizer, appLogger),
		SendLimiter: sendLimiter,
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, cfg.CORS.AllowedOrigins)
	routes.SetupRoutes(router, handlers, guards, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr":   server.Addr,
			"env":    cfg.Environment,
			"driver": cfg.Database.Driver,
			"redis":  cfg.Redis.Enabled(),
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{"error": err.Error()})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}
	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}
	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	switch cfg.Database.Driver {
	case database.DriverPostgres:
		for key, value := range map[string]string{
			"database.host (or CLAIMSY_DB_HOST)":         cfg.Database.Host,
			"database.username (or CLAIMSY_DB_USERNAME)": cfg.Database.Username,
			"database.password (or CLAIMSY_DB_PASSWORD)": cfg.Database.Password,
			"database.database (or CLAIMSY_DB_NAME)":     cfg.Database.Database,
		} {
			if value == "" {
				missingConfigs = append(missingConfigs, key)
			}
		}
	case database.DriverSQLite:
		if cfg.Database.SQLitePath == "" {
			missingConfigs = append(missingConfigs, "database.sqlitePath")
		}
	default:
		return fmt.Errorf("invalid database driver: %q, must be %s or %s",
			cfg.Database.Driver, database.DriverPostgres, database.DriverSQLite)
	}

	if cfg.Database.QueryTimeout == 0 {
		missingConfigs = append(missingConfigs, "database.queryTimeout")
	}

	if cfg.Auth.JWTSecret == "" {
		missingConfigs = append(missingConfigs, "auth.jwtSecret (CLAIMSY_JWT_SECRET)")
	}

	if cfg.Reset.HourUTC < 0 || cfg.Reset.HourUTC > 23 {
		return fmt.Errorf("reset.hourUTC must be between 0 and 23, got %d", cfg.Reset.HourUTC)
	}

	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	if cfg.Logger.Level == "" {
		missingConfigs = append(missingConfigs, "logger.level")
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	if cfg.Environment == config.Production {
		var warnings []string

		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if cfg.Database.Driver == database.DriverPostgres &&
			sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}
		if cfg.Cron.Secret == "" && cfg.Cron.TrustedHeader == "" {
			warnings = append(warnings, "cron.secret is empty; /cron/monthly-reset rejects every call")
		}
		if !cfg.Redis.Enabled() {
			warnings = append(warnings, "redis.addr is empty; reset locks and rate limits are not shared between instances")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential issues in production configuration: %v", warnings)
		}
	}

	return nil
}
