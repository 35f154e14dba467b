package usecase

import (
	"context"

	"github.com/claimsy/karma/internal/domain/entity"
)

// TransferRequest is a request to move karma between two members
type TransferRequest struct {
	SenderID       int64
	ReceiverID     int64
	Amount         int64
	Message        string
	IdempotencyKey string // Optional; a resend with the same key returns the original transaction
}

// TransferResult is the outcome of an executed transfer
type TransferResult struct {
	Transaction *entity.Transaction
	Replayed    bool // True when an earlier transaction with the same idempotency key was returned
}

// TransactionUseCase defines the karma transfer operations
type TransactionUseCase interface {
	// ValidateTransaction checks a prospective transfer without side effects.
	// Rule violations are reported in the result, not as an error.
	ValidateTransaction(ctx context.Context, senderID, receiverID, amount int64) (*entity.ValidationResult, error)

	// ExecuteTransaction atomically re-validates and applies a transfer
	ExecuteTransaction(ctx context.Context, req TransferRequest) (*TransferResult, error)
}

// LedgerUseCase defines read access to the transaction ledger
type LedgerUseCase interface {
	GetTransaction(ctx context.Context, workspaceID, transactionID int64) (*entity.Transaction, error)
	ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error)
	Leaderboard(ctx context.Context, workspaceID int64, period entity.LeaderboardPeriod, limit int) ([]entity.LeaderboardEntry, error)
}

// DailyLimitUseCase exposes the per-day send budget of a member
type DailyLimitUseCase interface {
	GetDailyLimitInfo(ctx context.Context, profileID int64) (*entity.DailyLimitInfo, error)
}
