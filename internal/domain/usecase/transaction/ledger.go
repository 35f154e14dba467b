package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
)

// LedgerService answers read queries over the transaction ledger
type LedgerService struct {
	uow          persistence.UnitOfWork
	timeProvider coreport.TimeProvider
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(uow persistence.UnitOfWork, timeProvider coreport.TimeProvider) *LedgerService {
	return &LedgerService{
		uow:          uow,
		timeProvider: timeProvider,
	}
}

// GetTransaction returns one transaction of workspaceID. Transactions of other
// workspaces are reported as not found.
func (s *LedgerService) GetTransaction(ctx context.Context, workspaceID, transactionID int64) (*entity.Transaction, error) {
	txn, err := s.uow.GetTransactionRepository(ctx).GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.WorkspaceID != workspaceID {
		return nil, errs.ErrTransactionNotFound
	}
	return txn, nil
}

// ListTransactions returns one page of the ledger
func (s *LedgerService) ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	filter.Normalize()

	switch filter.Direction {
	case entity.DirectionAll, entity.DirectionSent, entity.DirectionReceived:
	default:
		return nil, fmt.Errorf("%w: unknown direction %q", errs.ErrInvalidRequest, filter.Direction)
	}
	switch filter.View {
	case entity.ViewYou, entity.ViewEveryone:
	default:
		return nil, fmt.Errorf("%w: unknown view %q", errs.ErrInvalidRequest, filter.View)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, fmt.Errorf("%w: from must be before to", errs.ErrInvalidRequest)
	}

	return s.uow.GetTransactionRepository(ctx).List(ctx, filter)
}

// Leaderboard ranks the members of a workspace by karma received in period
func (s *LedgerService) Leaderboard(ctx context.Context, workspaceID int64, period entity.LeaderboardPeriod, limit int) ([]entity.LeaderboardEntry, error) {
	var since *time.Time

	switch period {
	case entity.PeriodAll:
	case entity.PeriodMonth, "":
		now := s.timeProvider.Now().UTC()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		since = &start
	default:
		return nil, fmt.Errorf("%w: unknown leaderboard period %q", errs.ErrInvalidRequest, period)
	}

	return s.uow.GetTransactionRepository(ctx).Leaderboard(ctx, workspaceID, since, limit)
}
