package usecase

import (
	"context"

	"github.com/claimsy/karma/internal/domain/entity"
)

// MemberBalance is the balance view of a member
type MemberBalance struct {
	ProfileID         int64
	WorkspaceID       int64
	CurrencyName      string
	GivingBalance     int64
	RedeemableBalance int64
	MonthlyAllowance  int64
	DailyLimit        *entity.DailyLimitInfo
}

// MemberUseCase defines member lookups
type MemberUseCase interface {
	// GetActiveMember resolves an authenticated profile; inactive members are not found
	GetActiveMember(ctx context.Context, profileID int64) (*entity.Account, error)
	GetBalance(ctx context.Context, profileID int64) (*MemberBalance, error)
}
