package persistence

import (
	"context"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
)

// AccountRepository defines operations on member accounts.
// Balance mutations are guarded so a balance can never go negative.
type AccountRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
	// LockByID reads the account with an exclusive row lock held until the transaction ends
	LockByID(ctx context.Context, id int64) (*entity.Account, error)
	Create(ctx context.Context, account *entity.Account) error
	ListActiveByWorkspace(ctx context.Context, workspaceID int64) ([]*entity.Account, error)

	// DebitGiving fails with a validation error when the balance is below amount
	DebitGiving(ctx context.Context, id, amount int64) error
	CreditRedeemable(ctx context.Context, id, amount int64) error
	AddGivingBalance(ctx context.Context, id, amount int64) error
}

// WorkspaceRepository defines operations on workspaces and their settings
type WorkspaceRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Workspace, error)
	GetSettings(ctx context.Context, workspaceID int64) (*entity.WorkspaceSettings, error)
	ListActive(ctx context.Context) ([]*entity.Workspace, error)
	Create(ctx context.Context, workspace *entity.Workspace, settings *entity.WorkspaceSettings) error
}

// TransactionRepository defines operations on the append-only ledger
type TransactionRepository interface {
	Create(ctx context.Context, txn *entity.Transaction) error
	GetByID(ctx context.Context, id int64) (*entity.Transaction, error)
	GetBySenderAndKey(ctx context.Context, senderID int64, idempotencyKey string) (*entity.Transaction, error)
	List(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error)
	// Leaderboard ranks receivers of a workspace; since nil means all time
	Leaderboard(ctx context.Context, workspaceID int64, since *time.Time, limit int) ([]entity.LeaderboardEntry, error)
}

// DailyUsageRepository defines operations on per-member daily send totals
type DailyUsageRepository interface {
	// GetAmountSent returns 0 when nothing was sent on day
	GetAmountSent(ctx context.Context, profileID int64, day time.Time) (int64, error)
	Increment(ctx context.Context, profileID int64, day time.Time, amount int64) error
}

// ResetHistoryRepository defines operations on monthly reset records
type ResetHistoryRepository interface {
	// Claim inserts the record; errs.ErrAlreadyReset when the month is already claimed
	Claim(ctx context.Context, history *entity.ResetHistory) error
	Update(ctx context.Context, history *entity.ResetHistory) error
	Exists(ctx context.Context, workspaceID int64, resetMonth string) (bool, error)
	ListByWorkspace(ctx context.Context, workspaceID int64, limit int) ([]*entity.ResetHistory, error)
}
