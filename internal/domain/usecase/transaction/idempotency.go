package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/persistence"
)

// IdempotencyHandler finds transfers already committed under a client key
type IdempotencyHandler struct{}

// NewIdempotencyHandler creates a new IdempotencyHandler
func NewIdempotencyHandler() *IdempotencyHandler {
	return &IdempotencyHandler{}
}

// CheckIdempotency returns the transaction the sender created with key, if any.
// An empty key never matches. A key reused for a different transfer is rejected.
func (h *IdempotencyHandler) CheckIdempotency(
	ctx context.Context,
	transactionRepo persistence.TransactionRepository,
	senderID, receiverID, amount int64,
	key string,
) (*entity.Transaction, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	txn, err := transactionRepo.GetBySenderAndKey(ctx, senderID, key)
	if err != nil {
		if errors.Is(err, errs.ErrTransactionNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	if txn.ReceiverID != receiverID || txn.Amount != amount {
		return nil, true, fmt.Errorf("%w: idempotency key %q was used for a different transfer", errs.ErrInvalidRequest, key)
	}
	return txn, true, nil
}
