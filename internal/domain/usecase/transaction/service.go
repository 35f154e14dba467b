package transaction

import (
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// Service ties together the transfer, ledger and daily limit components
type Service struct {
	*TransactionExecutor
	*LedgerService
	*DailyLimitTracker
}

var (
	_ usecase.TransactionUseCase = (*Service)(nil)
	_ usecase.LedgerUseCase      = (*Service)(nil)
	_ usecase.DailyLimitUseCase  = (*Service)(nil)
)

// NewTransactionService creates a new transaction service
func NewTransactionService(
	uow persistence.UnitOfWork,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
	config Config,
) *Service {
	validator := NewTransactionValidator(config)

	return &Service{
		TransactionExecutor: NewTransactionExecutor(uow, idGenerator, timeProvider, validator, logger, config),
		LedgerService:       NewLedgerService(uow, timeProvider),
		DailyLimitTracker:   NewDailyLimitTracker(uow, timeProvider),
	}
}
