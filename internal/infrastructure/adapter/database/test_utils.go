package database

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/infrastructure/adapter/database/migration"
	"github.com/claimsy/karma/internal/infrastructure/adapter/logger"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	timeprovider "github.com/claimsy/karma/internal/infrastructure/adapter/time"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB opens a private in-memory sqlite database migrated to the current schema.
// It is closed when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)

	noop := logger.NewNoopLogger()
	clock := timeprovider.NewRealTimeProvider()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         NewDatabaseLogger(noop, clock, "silent"),
		NowFunc:        func() time.Time { return clock.Now() },
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get test database connection: %v", err)
	}
	// A shared-cache memory database lives as long as one connection does
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if err := migration.NewMigrationManager(db, noop, clock).MigrateAll(context.Background()); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// TestWorkspace describes a workspace fixture
type TestWorkspace struct {
	ID                   int64
	Name                 string
	Currency             string
	MonthlyAllowance     int64
	MinAmount            int64
	MaxAmount            int64
	DailyLimitPercentage int
	Inactive             bool
}

// CreateTestWorkspace inserts a workspace and its settings
func CreateTestWorkspace(t *testing.T, db *gorm.DB, ws TestWorkspace) {
	t.Helper()

	now := time.Now().UTC()
	if ws.Name == "" {
		ws.Name = fmt.Sprintf("workspace-%d", ws.ID)
	}
	if ws.Currency == "" {
		ws.Currency = "karma"
	}

	if err := db.Create(&model.Workspace{
		ID:        ws.ID,
		Name:      ws.Name,
		Active:    !ws.Inactive,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error; err != nil {
		t.Fatalf("Failed to create test workspace: %v", err)
	}

	if err := db.Create(&model.WorkspaceSettings{
		WorkspaceID:          ws.ID,
		CurrencyName:         ws.Currency,
		MonthlyAllowance:     ws.MonthlyAllowance,
		MinTransactionAmount: ws.MinAmount,
		MaxTransactionAmount: ws.MaxAmount,
		DailyLimitPercentage: ws.DailyLimitPercentage,
		CreatedAt:            now,
		UpdatedAt:            now,
	}).Error; err != nil {
		t.Fatalf("Failed to create test workspace settings: %v", err)
	}
}

// TestAccount describes an account fixture
type TestAccount struct {
	ID            int64
	WorkspaceID   int64
	Role          string
	Department    string
	GivingBalance int64
	Redeemable    int64
	Inactive      bool
}

// CreateTestAccount inserts an account
func CreateTestAccount(t *testing.T, db *gorm.DB, acc TestAccount) {
	t.Helper()

	now := time.Now().UTC()
	if acc.Role == "" {
		acc.Role = "employee"
	}

	if err := db.Create(&model.Account{
		ID:                acc.ID,
		WorkspaceID:       acc.WorkspaceID,
		DisplayName:       fmt.Sprintf("member-%d", acc.ID),
		Email:             fmt.Sprintf("member-%d@example.com", acc.ID),
		Role:              acc.Role,
		Department:        acc.Department,
		GivingBalance:     acc.GivingBalance,
		RedeemableBalance: acc.Redeemable,
		Active:            !acc.Inactive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}).Error; err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}
}

// AccountBalances reads both balances of an account
func AccountBalances(t *testing.T, db *gorm.DB, id int64) (giving, redeemable int64) {
	t.Helper()

	var acc model.Account
	if err := db.First(&acc, id).Error; err != nil {
		t.Fatalf("Failed to read test account %d: %v", id, err)
	}
	return acc.GivingBalance, acc.RedeemableBalance
}
