package member

import (
	"context"
	"errors"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// MemberUseCase serves member lookups and balance views
type MemberUseCase struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

var _ usecase.MemberUseCase = (*MemberUseCase)(nil)

// NewMemberUseCase creates a new member use case instance
func NewMemberUseCase(
	uow persistence.UnitOfWork,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *MemberUseCase {
	return &MemberUseCase{
		uow:          uow,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetActiveMember returns the account of profileID. Removed members and
// members of a deactivated workspace are reported as not found.
func (m *MemberUseCase) GetActiveMember(ctx context.Context, profileID int64) (*entity.Account, error) {
	if profileID <= 0 {
		return nil, errs.ErrAccountNotFound
	}

	account, err := m.uow.GetAccountRepository(ctx).GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !account.Active {
		return nil, errs.ErrAccountNotFound
	}

	ws, err := m.uow.GetWorkspaceRepository(ctx).GetByID(ctx, account.WorkspaceID)
	if err != nil {
		if errors.Is(err, errs.ErrWorkspaceNotFound) {
			return nil, errs.ErrAccountNotFound
		}
		return nil, err
	}
	if !ws.Active {
		return nil, errs.ErrAccountNotFound
	}
	return account, nil
}

// GetBalance returns both balances of a member with the workspace allowance and today's cap
func (m *MemberUseCase) GetBalance(ctx context.Context, profileID int64) (*usecase.MemberBalance, error) {
	account, err := m.GetActiveMember(ctx, profileID)
	if err != nil {
		return nil, err
	}

	settings, err := m.uow.GetWorkspaceRepository(ctx).GetSettings(ctx, account.WorkspaceID)
	if err != nil {
		return nil, err
	}

	now := m.timeProvider.Now()
	sentToday, err := m.uow.GetDailyUsageRepository(ctx).GetAmountSent(ctx, profileID, now)
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Member balance retrieved", map[string]any{
		"profile_id":   profileID,
		"workspace_id": account.WorkspaceID,
	})

	return &usecase.MemberBalance{
		ProfileID:         account.ID,
		WorkspaceID:       account.WorkspaceID,
		CurrencyName:      settings.CurrencyName,
		GivingBalance:     account.GivingBalance,
		RedeemableBalance: account.RedeemableBalance,
		MonthlyAllowance:  settings.MonthlyAllowance,
		DailyLimit:        entity.NewDailyLimitInfo(settings.DailyLimit(), sentToday, now),
	}, nil
}
