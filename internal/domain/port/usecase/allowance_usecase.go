package usecase

import (
	"context"

	"github.com/claimsy/karma/internal/domain/entity"
)

// ResetHistoryView is the reset history of one workspace
type ResetHistoryView struct {
	History           []*entity.ResetHistory
	HasResetThisMonth bool
}

// AllowanceUseCase defines the monthly allowance reset operations
type AllowanceUseCase interface {
	// ResetAllWorkspacesAllowances tops up every active workspace that was not reset this month
	ResetAllWorkspacesAllowances(ctx context.Context, trigger entity.ResetTrigger) ([]entity.ResetResult, error)

	// ManualWorkspaceReset resets one workspace on behalf of an administrator
	ManualWorkspaceReset(ctx context.Context, workspaceID, actorID int64) (*entity.ResetResult, error)

	GetResetHistory(ctx context.Context, workspaceID int64, limit int) (*ResetHistoryView, error)
}
