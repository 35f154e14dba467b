package transaction

import (
	"github.com/claimsy/karma/internal/domain/entity"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
)

// Config holds the tunable transfer rules
type Config struct {
	// MaxRetries is the number of attempts made when a transfer hits a lock conflict
	MaxRetries int
	// RetryBaseDelay is the first backoff; it doubles per attempt
	RetryBaseDelay coreport.Duration
	// WarningThresholdPercent starts the near-limit warning band, as a share of the daily cap
	WarningThresholdPercent int
	// EnforceDepartmentRule blocks employees from sending within their own department
	EnforceDepartmentRule bool
	MaxMessageLength      int
}

// DefaultConfig returns the production defaults
func DefaultConfig() Config {
	return Config{
		MaxRetries:              3,
		RetryBaseDelay:          20 * coreport.Millisecond,
		WarningThresholdPercent: 90,
		EnforceDepartmentRule:   false,
		MaxMessageLength:        entity.MaxMessageLength,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.MaxRetries < 1 {
		c.MaxRetries = def.MaxRetries
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = def.RetryBaseDelay
	}
	if c.WarningThresholdPercent <= 0 || c.WarningThresholdPercent > 100 {
		c.WarningThresholdPercent = def.WarningThresholdPercent
	}
	if c.MaxMessageLength <= 0 || c.MaxMessageLength > entity.MaxMessageLength {
		c.MaxMessageLength = entity.MaxMessageLength
	}
	return c
}
