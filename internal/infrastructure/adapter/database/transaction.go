package database

import (
	"context"
	"fmt"
	"strings"

	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/infrastructure/adapter/repository"
	"gorm.io/gorm"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// Context keys
const txKey contextKey = "tx"

// UnitOfWork implements the unit of work pattern for database transactions
type UnitOfWork struct {
	db           *gorm.DB
	logger       coreport.Logger
	timeProvider coreport.TimeProvider
	errorMapper  *ErrorMapper
	metrics      *MetricsCollector
}

// NewUnitOfWork creates a new UnitOfWork instance
func NewUnitOfWork(db *gorm.DB, logger coreport.Logger, timeProvider coreport.TimeProvider) persistence.UnitOfWork {
	return &UnitOfWork{
		db:           db,
		logger:       logger,
		timeProvider: timeProvider,
		errorMapper:  NewErrorMapper(),
		metrics:      NewMetricsCollector(logger, timeProvider),
	}
}

// Begin starts a new database transaction and stores it in the returned context.
// Postgres runs at READ COMMITTED; transfers take explicit row locks.
func (u *UnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		u.logger.Error("Failed to begin transaction", map[string]any{"error": tx.Error.Error()})
		return ctx, fmt.Errorf("failed to begin transaction: %w", u.errorMapper.MapError(tx.Error, "begin"))
	}

	if tx.Dialector.Name() == DriverPostgres {
		if err := tx.Exec("SET TRANSACTION ISOLATION LEVEL READ COMMITTED").Error; err != nil {
			tx.Rollback()
			u.logger.Error("Failed to set transaction isolation level", map[string]any{"error": err.Error()})
			return ctx, fmt.Errorf("failed to set transaction isolation level: %w", u.errorMapper.MapError(err, "begin"))
		}
	}

	u.logger.Debug("Database transaction started", map[string]any{
		"dialect": tx.Dialector.Name(),
	})
	return context.WithValue(ctx, txKey, tx), nil
}

// Commit commits the current transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx, err := u.txFromContext(ctx)
	if err != nil {
		return err
	}

	_, err = u.metrics.MeasureQuery(ctx, "commit", func() (int64, error) {
		return 0, tx.Commit().Error
	})
	if err != nil {
		u.logger.Error("Failed to commit transaction", map[string]any{"error": err.Error()})
		return fmt.Errorf("failed to commit transaction: %w", u.errorMapper.MapError(err, "commit"))
	}
	return nil
}

// Rollback rolls back the current transaction. Rolling back a finished transaction is not an error.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx, err := u.txFromContext(ctx)
	if err != nil {
		return err
	}

	u.logger.Debug("Rolling back database transaction", nil)

	err = tx.Rollback().Error
	if err != nil && strings.Contains(err.Error(), "already been committed or rolled back") {
		u.logger.Warn("Transaction has already been committed or rolled back", map[string]any{
			"error": err.Error(),
		})
		return nil
	}

	if err != nil {
		u.logger.Error("Failed to rollback transaction", map[string]any{
			"error": err.Error(),
		})
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// SavePoint marks a point the current transaction can roll back to
func (u *UnitOfWork) SavePoint(ctx context.Context, name string) error {
	tx, err := u.txFromContext(ctx)
	if err != nil {
		return err
	}
	if err := tx.SavePoint(name).Error; err != nil {
		return fmt.Errorf("failed to create savepoint %s: %w", name, u.errorMapper.MapError(err, "savepoint"))
	}
	return nil
}

// RollbackTo undoes the work done since the named savepoint
func (u *UnitOfWork) RollbackTo(ctx context.Context, name string) error {
	tx, err := u.txFromContext(ctx)
	if err != nil {
		return err
	}
	if err := tx.RollbackTo(name).Error; err != nil {
		return fmt.Errorf("failed to roll back to savepoint %s: %w", name, u.errorMapper.MapError(err, "rollback to savepoint"))
	}
	return nil
}

// GetAccountRepository returns an account repository in the current transaction
func (u *UnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	return repository.NewAccountRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetWorkspaceRepository returns a workspace repository in the current transaction
func (u *UnitOfWork) GetWorkspaceRepository(ctx context.Context) persistence.WorkspaceRepository {
	return repository.NewWorkspaceRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetTransactionRepository returns a transaction repository in the current transaction
func (u *UnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	return repository.NewTransactionRepository(u.getDbFromContext(ctx), u.logger)
}

// GetDailyUsageRepository returns a daily usage repository in the current transaction
func (u *UnitOfWork) GetDailyUsageRepository(ctx context.Context) persistence.DailyUsageRepository {
	return repository.NewDailyUsageRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

// GetResetHistoryRepository returns a reset history repository in the current transaction
func (u *UnitOfWork) GetResetHistoryRepository(ctx context.Context) persistence.ResetHistoryRepository {
	return repository.NewResetHistoryRepository(u.getDbFromContext(ctx), u.timeProvider, u.logger)
}

func (u *UnitOfWork) txFromContext(ctx context.Context) (*gorm.DB, error) {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if !ok || tx == nil {
		return nil, fmt.Errorf("no transaction found in context")
	}
	return tx, nil
}

// getDbFromContext returns the transaction in ctx, or the pool bound to ctx
func (u *UnitOfWork) getDbFromContext(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok && tx != nil {
		return tx
	}
	return u.db.WithContext(ctx)
}
