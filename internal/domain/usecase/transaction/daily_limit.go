package transaction

import (
	"context"

	"github.com/claimsy/karma/internal/domain/entity"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
)

// DailyLimitTracker reports how much of the daily cap a member has used.
// The running total itself is written by the executor.
type DailyLimitTracker struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
}

// NewDailyLimitTracker creates a new DailyLimitTracker
func NewDailyLimitTracker(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider) *DailyLimitTracker {
	return &DailyLimitTracker{
		uow:          uow,
		timeProvider: timeProvider,
	}
}

// GetDailyLimitInfo returns the cap, today's total and what remains for the current UTC day
func (t *DailyLimitTracker) GetDailyLimitInfo(ctx context.Context, profileID int64) (*entity.DailyLimitInfo, error) {
	account, err := t.uow.GetAccountRepository(ctx).GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}

	settings, err := t.uow.GetWorkspaceRepository(ctx).GetSettings(ctx, account.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := t.timeProvider.Now()
	sentToday, err := t.uow.GetDailyUsageRepository(ctx).GetAmountSent(ctx, profileID, now)
	if err != nil {
		return nil, err
	}

	return entity.NewDailyLimitInfo(settings.DailyLimit(), sentToday, now), nil
}
