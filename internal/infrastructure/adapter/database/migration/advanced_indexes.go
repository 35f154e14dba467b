package migration

import (
	"context"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"gorm.io/gorm"
)

// AdvancedIndexManager manages PostgreSQL-specific advanced indexes
type AdvancedIndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdvancedIndexManager creates a new advanced index manager
func NewAdvancedIndexManager(db *gorm.DB, logger coreport.Logger) *AdvancedIndexManager {
	return &AdvancedIndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateAdvancedIndexes creates advanced PostgreSQL indexes for the ledger queries
func (m *AdvancedIndexManager) CreateAdvancedIndexes(ctx context.Context) error {
	m.logger.Info("Creating advanced PostgreSQL indexes", nil)

	statements := []struct {
		name string
		sql  string
	}{
		{
			// Leaderboard aggregation reads amount without touching the heap
			name: "idx_transactions_leaderboard",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_leaderboard
				ON transactions (workspace_id, receiver_id, created_at) INCLUDE (amount)`,
		},
		{
			name: "idx_transactions_created_at_brin",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
				ON transactions USING BRIN (created_at)
				WITH (pages_per_range = 32)`,
		},
		{
			name: "idx_transactions_idempotency",
			sql: `CREATE INDEX IF NOT EXISTS idx_transactions_idempotency
				ON transactions (sender_id, idempotency_key)
				WHERE idempotency_key IS NOT NULL`,
		},
		{
			name: "idx_reset_history_executed_at",
			sql: `CREATE INDEX IF NOT EXISTS idx_reset_history_executed_at
				ON reset_history (workspace_id, executed_at DESC)`,
		},
	}

	for _, stmt := range statements {
		if err := m.db.WithContext(ctx).Exec(stmt.sql).Error; err != nil {
			m.logger.Error("Failed to create advanced index", map[string]any{
				"index": stmt.name,
				"error": err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Advanced PostgreSQL indexes created successfully", nil)
	return nil
}

// CreatePerformanceTweaks applies PostgreSQL storage tweaks. Failures are logged only.
func (m *AdvancedIndexManager) CreatePerformanceTweaks(ctx context.Context) {
	m.logger.Info("Applying PostgreSQL performance tweaks", nil)

	tweaks := []struct {
		name string
		sql  string
	}{
		// Balance updates are frequent; free space keeps them HOT
		{"accounts_fillfactor", "ALTER TABLE accounts SET (fillfactor = 80)"},
		{"daily_usage_fillfactor", "ALTER TABLE daily_usage SET (fillfactor = 80)"},
		{"transactions_receiver_statistics", "ALTER TABLE transactions ALTER COLUMN receiver_id SET STATISTICS 1000"},
	}

	for _, tweak := range tweaks {
		if err := m.db.WithContext(ctx).Exec(tweak.sql).Error; err != nil {
			m.logger.Warn("Failed to apply performance tweak", map[string]any{
				"tweak": tweak.name,
				"error": err.Error(),
			})
		}
	}
}
