package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	coreport "github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/persistence"
	"github.com/claimsy/karma/internal/domain/port/usecase"
)

// errKeyRace marks an insert that lost an idempotency key race to a concurrent request
var errKeyRace = errors.New("idempotency key committed concurrently")

// TransactionExecutor is the only component that moves karma between balances
type TransactionExecutor struct {
	uow                persistence.UnitOfWork
	idGenerator        coreport.IDGenerator
	timeProvider       coreport.TimeProvider
	validator          *TransactionValidator
	idempotencyHandler *IdempotencyHandler
	logger             coreport.Logger
	config             Config
}

// NewTransactionExecutor creates a new TransactionExecutor
func NewTransactionExecutor(
	uow persistence.UnitOfWork,
	idGenerator coreport.IDGenerator,
	timeProvider coreport.TimeProvider,
	validator *TransactionValidator,
	logger coreport.Logger,
	config Config,
) *TransactionExecutor {
	return &TransactionExecutor{
		uow:                uow,
		idGenerator:        idGenerator,
		timeProvider:       timeProvider,
		validator:          validator,
		idempotencyHandler: NewIdempotencyHandler(),
		logger:             logger,
		config:             config.normalized(),
	}
}

// ValidateTransaction evaluates a prospective transfer on the current state, without locks
func (e *TransactionExecutor) ValidateTransaction(ctx context.Context, senderID, receiverID, amount int64) (*entity.ValidationResult, error) {
	if result := e.validator.ValidateInput(senderID, receiverID, amount); !result.Valid {
		return result, nil
	}

	snapshot, err := e.loadSnapshot(ctx, senderID, receiverID, e.timeProvider.Now(), false)
	if err != nil {
		return nil, err
	}
	return e.validator.Validate(*snapshot, amount), nil
}

// ExecuteTransaction applies a transfer atomically, retrying lock conflicts with backoff
func (e *TransactionExecutor) ExecuteTransaction(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	if result := e.validator.ValidateInput(req.SenderID, req.ReceiverID, req.Amount); !result.Valid {
		return nil, errs.NewValidationError(result.Errors...)
	}
	if messages := e.validator.ValidateMessage(req.Message); len(messages) > 0 {
		return nil, errs.NewValidationError(messages...)
	}
	if len(req.IdempotencyKey) > entity.MaxIdempotencyKeyLength {
		return nil, fmt.Errorf("%w: idempotency key longer than %d bytes", errs.ErrInvalidRequest, entity.MaxIdempotencyKeyLength)
	}

	fields := map[string]any{
		"sender_id":   req.SenderID,
		"receiver_id": req.ReceiverID,
		"amount":      req.Amount,
	}

	for attempt := 1; ; attempt++ {
		result, err := e.executeOnce(ctx, req)
		if err == nil {
			return result, nil
		}

		if errors.Is(err, errKeyRace) {
			return e.replayAfterRace(ctx, req)
		}

		if !errs.IsConflictError(err) {
			return nil, err
		}
		if attempt >= e.config.MaxRetries {
			transferErr := errs.NewTransferError(req.SenderID, req.ReceiverID, req.Amount,
				fmt.Sprintf("gave up after %d attempts", attempt), err)
			e.logger.Error("Transfer failed after retries", withField(transferErr.LogFields(), "attempts", attempt))
			return nil, transferErr
		}

		backoff := e.config.RetryBaseDelay * coreport.Duration(1<<uint(attempt-1))
		e.logger.Warn("Transfer conflicted, retrying", withField(withField(fields, "attempt", attempt), "retry_after", backoff.Std().String()))

		select {
		case <-e.timeProvider.After(backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (e *TransactionExecutor) executeOnce(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	var result *usecase.TransferResult

	// one clock reading per attempt keys both the daily cap check and the usage write
	now := e.timeProvider.Now()

	err := persistence.Within(ctx, e.uow, func(txCtx context.Context) error {
		transactionRepo := e.uow.GetTransactionRepository(txCtx)

		existing, found, err := e.idempotencyHandler.CheckIdempotency(txCtx, transactionRepo, req.SenderID, req.ReceiverID, req.Amount, req.IdempotencyKey)
		if err != nil {
			return err
		}
		if found {
			result = &usecase.TransferResult{Transaction: existing, Replayed: true}
			return nil
		}

		snapshot, err := e.loadSnapshot(txCtx, req.SenderID, req.ReceiverID, now, true)
		if err != nil {
			return err
		}

		if validation := e.validator.Validate(*snapshot, req.Amount); !validation.Valid {
			return errs.NewValidationError(validation.Errors...)
		}

		txn, err := entity.NewTransaction(
			e.idGenerator.NextID(),
			snapshot.Sender.WorkspaceID,
			req.SenderID,
			req.ReceiverID,
			req.Amount,
			req.Message,
			req.IdempotencyKey,
			now,
		)
		if err != nil {
			return err
		}

		accountRepo := e.uow.GetAccountRepository(txCtx)
		if err := accountRepo.DebitGiving(txCtx, req.SenderID, req.Amount); err != nil {
			return err
		}
		if err := accountRepo.CreditRedeemable(txCtx, req.ReceiverID, req.Amount); err != nil {
			return err
		}
		if err := e.uow.GetDailyUsageRepository(txCtx).Increment(txCtx, req.SenderID, txn.CreatedAt, req.Amount); err != nil {
			return err
		}
		if err := transactionRepo.Create(txCtx, txn); err != nil {
			if errors.Is(err, errs.ErrDuplicate) && req.IdempotencyKey != "" {
				return errKeyRace
			}
			return err
		}

		result = &usecase.TransferResult{Transaction: txn}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Replayed {
		e.logger.Info("Transfer replayed from idempotency key", map[string]any{
			"transaction_id": result.Transaction.ID,
			"sender_id":      req.SenderID,
		})
	} else {
		e.logger.Info("Transfer committed", map[string]any{
			"transaction_id": result.Transaction.ID,
			"workspace_id":   result.Transaction.WorkspaceID,
			"sender_id":      req.SenderID,
			"receiver_id":    req.ReceiverID,
			"amount":         req.Amount,
		})
	}
	return result, nil
}

func (e *TransactionExecutor) replayAfterRace(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	existing, found, err := e.idempotencyHandler.CheckIdempotency(ctx, e.uow.GetTransactionRepository(ctx), req.SenderID, req.ReceiverID, req.Amount, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w: idempotency key %q", errs.ErrConflict, req.IdempotencyKey)
	}
	return &usecase.TransferResult{Transaction: existing, Replayed: true}, nil
}

// loadSnapshot reads both accounts, the sender's workspace settings and the usage of now's day.
// With lock set the account rows are locked in ascending id order so two opposite
// transfers cannot deadlock.
func (e *TransactionExecutor) loadSnapshot(ctx context.Context, senderID, receiverID int64, now time.Time, lock bool) (*entity.TransferSnapshot, error) {
	accountRepo := e.uow.GetAccountRepository(ctx)
	read := accountRepo.GetByID
	if lock {
		read = accountRepo.LockByID
	}

	firstID, secondID := senderID, receiverID
	if secondID < firstID {
		firstID, secondID = secondID, firstID
	}

	first, err := read(ctx, firstID)
	if err != nil {
		return nil, err
	}
	second, err := read(ctx, secondID)
	if err != nil {
		return nil, err
	}

	sender, receiver := first, second
	if sender.ID != senderID {
		sender, receiver = second, first
	}

	settings, err := e.uow.GetWorkspaceRepository(ctx).GetSettings(ctx, sender.WorkspaceID)
	if err != nil {
		return nil, err
	}

	sentToday, err := e.uow.GetDailyUsageRepository(ctx).GetAmountSent(ctx, senderID, now)
	if err != nil {
		return nil, err
	}

	return &entity.TransferSnapshot{
		Sender:    sender,
		Receiver:  receiver,
		Settings:  settings,
		SentToday: sentToday,
	}, nil
}

func withField(fields map[string]any, key string, value any) map[string]any {
	out := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out[key] = value
	return out
}
