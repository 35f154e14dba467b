package config

import "time"

// Config holds all configuration for the application
type Config struct {
	Environment string            `mapstructure:"environment"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Logger      LoggerConfig      `mapstructure:"logger"`
	Transaction TransactionConfig `mapstructure:"transaction"`
	Reset       ResetConfig       `mapstructure:"reset"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Cron        CronConfig        `mapstructure:"cron"`
	RateLimit   RateLimitConfig   `mapstructure:"rateLimit"`
	CORS        CORSConfig        `mapstructure:"cors"`
	Snowflake   SnowflakeConfig   `mapstructure:"snowflake"`
	Seed        SeedConfig        `mapstructure:"seed"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host              string        `mapstructure:"host"`
	Port              int           `mapstructure:"port"`
	ReadTimeout       time.Duration `mapstructure:"readTimeout"`       // seconds
	WriteTimeout      time.Duration `mapstructure:"writeTimeout"`      // seconds
	IdleTimeout       time.Duration `mapstructure:"idleTimeout"`       // seconds
	ReadHeaderTimeout time.Duration `mapstructure:"readHeaderTimeout"` // seconds
	ShutdownTimeout   time.Duration `mapstructure:"shutdownTimeout"`   // seconds
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres or sqlite
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	SSLMode         string        `mapstructure:"sslMode"`
	SQLitePath      string        `mapstructure:"sqlitePath"`
	MaxOpenConns    int           `mapstructure:"maxOpenConns"`
	MaxIdleConns    int           `mapstructure:"maxIdleConns"`
	ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"` // minutes
	ConnMaxIdleTime time.Duration `mapstructure:"connMaxIdleTime"` // minutes
	QueryTimeout    time.Duration `mapstructure:"queryTimeout"`    // seconds
	RetryAttempts   int           `mapstructure:"retryAttempts"`
	RetryDelay      time.Duration `mapstructure:"retryDelay"` // seconds
}

// LoggerConfig contains logger settings
type LoggerConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// TransactionConfig contains transfer processing settings
type TransactionConfig struct {
	MaxRetries              int  `mapstructure:"maxRetries"`
	RetryBaseDelayMs        int  `mapstructure:"retryBaseDelayMs"`
	WarningThresholdPercent int  `mapstructure:"warningThresholdPercent"`
	EnforceDepartmentRule   bool `mapstructure:"enforceDepartmentRule"`
	MaxMessageLength        int  `mapstructure:"maxMessageLength"`
}

// ResetConfig contains monthly reset scheduler settings
type ResetConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	HourUTC      int           `mapstructure:"hourUTC"`
	RunOnStartup bool          `mapstructure:"runOnStartup"`
	LockTTL      time.Duration `mapstructure:"lockTTL"` // seconds
}

// RedisConfig contains redis settings. An empty Addr disables redis.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Enabled reports whether a redis server is configured
func (c RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// AuthConfig contains bearer token verification settings
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwtSecret"`
	Issuer    string `mapstructure:"issuer"`
}

// CronConfig contains scheduled trigger authentication settings
type CronConfig struct {
	Secret        string `mapstructure:"secret"`
	TrustedHeader string `mapstructure:"trustedHeader"`
}

// RateLimitConfig contains request rate limits
type RateLimitConfig struct {
	TransactionsPerMinute int64 `mapstructure:"transactionsPerMinute"`
}

// CORSConfig contains cross-origin settings
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
}

// SnowflakeConfig contains id generator settings
type SnowflakeConfig struct {
	NodeID int64 `mapstructure:"nodeID"`
}

// SeedConfig controls demo data creation at start-up
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}
