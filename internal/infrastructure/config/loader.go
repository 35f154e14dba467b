package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix prefixes every environment variable read by the service
const EnvPrefix = "CLAIMSY"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
	"../../configs/.env",
}

// LoadConfig loads configuration from file based on the environment.
// A missing config file is tolerated; defaults and environment variables still apply.
func LoadConfig() (*Config, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		fmt.Println("Warning: no config file found for environment", env)
	}

	return decode(v, env)
}

// LoadFromViper decodes an already populated viper instance
func LoadFromViper(v *viper.Viper, env string) (*Config, error) {
	setDefaults(v)
	return decode(v, env)
}

func decode(v *viper.Viper, env string) (*Config, error) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)

	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err == nil {
			err := godotenv.Load(path)
			if err == nil {
				return nil
			}
			lastError = err
		}
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}

	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 15)      // seconds
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 10)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.sqlitePath", "claimsy.db")
	v.SetDefault("database.maxOpenConns", 50)
	v.SetDefault("database.maxIdleConns", 25)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 5)     // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("transaction.maxRetries", 3)
	v.SetDefault("transaction.retryBaseDelayMs", 20)
	v.SetDefault("transaction.warningThresholdPercent", 90)
	v.SetDefault("transaction.enforceDepartmentRule", false)
	v.SetDefault("transaction.maxMessageLength", 500)

	v.SetDefault("reset.enabled", true)
	v.SetDefault("reset.hourUTC", 0)
	v.SetDefault("reset.runOnStartup", true)
	v.SetDefault("reset.lockTTL", 300) // seconds

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.issuer", "")
	v.SetDefault("cron.trustedHeader", "")

	v.SetDefault("rateLimit.transactionsPerMinute", 30)
	v.SetDefault("cors.allowedOrigins", []string{"*"})
	v.SetDefault("snowflake.nodeID", 1)
	v.SetDefault("seed.enabled", false)
}

// getEnvironment determines the environment to use based on CLAIMSY_ENV
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values.
// Secrets are only ever read from the environment.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"DB_DRIVER":      "database.driver",
		"DB_HOST":        "database.host",
		"DB_PORT":        "database.port",
		"DB_USERNAME":    "database.username",
		"DB_PASSWORD":    "database.password",
		"DB_NAME":        "database.database",
		"DB_SSL_MODE":    "database.sslMode",
		"DB_SQLITE_PATH": "database.sqlitePath",
		"SERVER_HOST":    "server.host",
		"LOGGER_LEVEL":   "logger.level",
		"LOGGER_FORMAT":  "logger.format",
		"REDIS_ADDR":     "redis.addr",
		"REDIS_PASSWORD": "redis.password",
		"JWT_SECRET":     "auth.jwtSecret",
		"JWT_ISSUER":     "auth.issuer",
		"CRON_SECRET":    "cron.secret",
		"CRON_HEADER":    "cron.trustedHeader",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(EnvPrefix + "_" + env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"SERVER_PORT":                  "server.port",
		"DB_MAX_OPEN_CONNS":            "database.maxOpenConns",
		"DB_MAX_IDLE_CONNS":            "database.maxIdleConns",
		"DB_QUERY_TIMEOUT_SECONDS":     "database.queryTimeout",
		"DB_RETRY_ATTEMPTS":            "database.retryAttempts",
		"TRANSACTION_MAX_RETRIES":      "transaction.maxRetries",
		"RESET_HOUR_UTC":               "reset.hourUTC",
		"REDIS_DB":                     "redis.db",
		"RATE_LIMIT_TX_PER_MINUTE":     "rateLimit.transactionsPerMinute",
		"SNOWFLAKE_NODE_ID":            "snowflake.nodeID",
		"TRANSACTION_WARNING_PERCENT":  "transaction.warningThresholdPercent",
		"DB_CONN_MAX_LIFETIME_MINUTES": "database.connMaxLifetime",
	}
	for env, key := range intOverrides {
		if value, ok := getEnvInt(EnvPrefix + "_" + env); ok {
			v.Set(key, value)
		}
	}

	boolOverrides := map[string]string{
		"RESET_ENABLED":           "reset.enabled",
		"RESET_RUN_ON_STARTUP":    "reset.runOnStartup",
		"ENFORCE_DEPARTMENT_RULE": "transaction.enforceDepartmentRule",
		"SEED_ENABLED":            "seed.enabled",
	}
	for env, key := range boolOverrides {
		if value, err := strconv.ParseBool(os.Getenv(EnvPrefix + "_" + env)); err == nil {
			v.Set(key, value)
		}
	}

	if origins := os.Getenv(EnvPrefix + "_CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("cors.allowedOrigins", strings.Split(origins, ","))
	}
}

// getEnvInt reads an integer environment variable
func getEnvInt(name string) (int, bool) {
	valStr := os.Getenv(name)
	if valStr == "" {
		return 0, false
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, false
	}
	return val, true
}

// processDurations converts time.Duration fields from their raw values to actual durations
func processDurations(config *Config) {
	config.Server.ReadTimeout = time.Duration(config.Server.ReadTimeout) * time.Second
	config.Server.WriteTimeout = time.Duration(config.Server.WriteTimeout) * time.Second
	config.Server.IdleTimeout = time.Duration(config.Server.IdleTimeout) * time.Second
	config.Server.ReadHeaderTimeout = time.Duration(config.Server.ReadHeaderTimeout) * time.Second
	config.Server.ShutdownTimeout = time.Duration(config.Server.ShutdownTimeout) * time.Second

	config.Database.ConnMaxLifetime = time.Duration(config.Database.ConnMaxLifetime) * time.Minute
	config.Database.ConnMaxIdleTime = time.Duration(config.Database.ConnMaxIdleTime) * time.Minute
	config.Database.QueryTimeout = time.Duration(config.Database.QueryTimeout) * time.Second
	config.Database.RetryDelay = time.Duration(config.Database.RetryDelay) * time.Second

	config.Reset.LockTTL = time.Duration(config.Reset.LockTTL) * time.Second
}
