package repository_test

import (
	"testing"

	"github.com/claimsy/karma/internal/infrastructure/adapter/database"
	"github.com/claimsy/karma/internal/infrastructure/adapter/logger"
	timeprovider "github.com/claimsy/karma/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

var (
	noopLogger = logger.NewNoopLogger()
	realClock  = timeprovider.NewRealTimeProvider()
)

// seedWorkspace creates workspace 1 with a 100 allowance, bounds 5..20, a 30% daily cap
// and members 10, 11 and 12. Member 20 lives in workspace 2.
func seedWorkspace(t *testing.T) *gorm.DB {
	t.Helper()

	db := database.NewTestDB(t)
	database.CreateTestWorkspace(t, db, database.TestWorkspace{
		ID: 1, Name: "Acme", MonthlyAllowance: 100, MinAmount: 5, MaxAmount: 20, DailyLimitPercentage: 30,
	})
	database.CreateTestWorkspace(t, db, database.TestWorkspace{
		ID: 2, Name: "Globex", MonthlyAllowance: 50, MinAmount: 1, MaxAmount: 50, DailyLimitPercentage: 100,
	})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 10, WorkspaceID: 1, GivingBalance: 100, Department: "eng"})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 11, WorkspaceID: 1, GivingBalance: 100, Department: "sales"})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 12, WorkspaceID: 1, GivingBalance: 100, Inactive: true})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 20, WorkspaceID: 2, GivingBalance: 50})
	return db
}
