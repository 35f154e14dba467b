package persistence

import (
	"context"
)

// UnitOfWork defines transaction management operations.
// Begin stores the transaction in the returned context; repositories obtained
// with that context take part in it.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	// SavePoint and RollbackTo scope a partial rollback inside the current transaction
	SavePoint(ctx context.Context, name string) error
	RollbackTo(ctx context.Context, name string) error

	GetAccountRepository(ctx context.Context) AccountRepository
	GetWorkspaceRepository(ctx context.Context) WorkspaceRepository
	GetTransactionRepository(ctx context.Context) TransactionRepository
	GetDailyUsageRepository(ctx context.Context) DailyUsageRepository
	GetResetHistoryRepository(ctx context.Context) ResetHistoryRepository
}

// Within runs fn inside a transaction, committing on success and rolling back otherwise
func Within(ctx context.Context, uow UnitOfWork, fn func(txCtx context.Context) error) (err error) {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = uow.Rollback(txCtx)
			panic(p)
		}
	}()

	if err = fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}

	return uow.Commit(txCtx)
}
