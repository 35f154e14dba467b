package database

import (
	"testing"
	"time"

	"github.com/claimsy/karma/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func validPostgresConfig() *Config {
	return &Config{
		Driver:        DriverPostgres,
		Host:          "localhost",
		Port:          5432,
		Username:      "claimsy",
		Password:      "secret",
		Database:      "claimsy",
		SSLMode:       "disable",
		MaxOpenConns:  10,
		MaxIdleConns:  5,
		QueryTimeout:  time.Second,
		LogLevel:      "info",
		RetryAttempts: 1,
	}
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, validPostgresConfig().Validate())

	missingHost := validPostgresConfig()
	missingHost.Host = ""
	assert.Error(t, missingHost.Validate())

	badDriver := validPostgresConfig()
	badDriver.Driver = "oracle"
	assert.Error(t, badDriver.Validate())

	sqliteCfg := validPostgresConfig()
	sqliteCfg.Driver = DriverSQLite
	sqliteCfg.Host = ""
	sqliteCfg.SQLitePath = "claimsy.db"
	assert.NoError(t, sqliteCfg.Validate())

	badLevel := validPostgresConfig()
	badLevel.LogLevel = "verbose"
	assert.Error(t, badLevel.Validate())
}

func TestConfig_DSN(t *testing.T) {
	pg := validPostgresConfig()
	assert.Equal(t, "host=localhost port=5432 user=claimsy password=secret dbname=claimsy sslmode=disable TimeZone=UTC", pg.DSN())

	lite := &Config{Driver: DriverSQLite, SQLitePath: "local.db"}
	assert.Contains(t, lite.DSN(), "file:local.db?")
	assert.Contains(t, lite.DSN(), "_txlock=immediate")
}

func TestFromAppConfig(t *testing.T) {
	app := &config.Config{
		Database: config.DatabaseConfig{
			Driver:       "postgres",
			Host:         "db",
			Port:         "6543",
			MaxOpenConns: 7,
			RetryDelay:   2 * time.Second,
		},
		Logger: config.LoggerConfig{Level: "warn"},
	}

	cfg := FromAppConfig(app)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, 6543, cfg.Port)
	assert.Equal(t, 7, cfg.MaxOpenConns)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestParsePort(t *testing.T) {
	assert.Equal(t, 5432, ParsePort("5432"))
	assert.Equal(t, 0, ParsePort("port"))
	assert.Equal(t, 0, ParsePort("70000"))
}
