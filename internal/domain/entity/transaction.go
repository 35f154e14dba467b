package entity

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	errs "github.com/claimsy/karma/internal/domain/error"
)

const (
	// MaxMessageLength is the longest message, in characters, a transfer may carry
	MaxMessageLength = 500
	// MaxIdempotencyKeyLength bounds the Idempotency-Key header
	MaxIdempotencyKeyLength = 128
)

// Transaction is an immutable ledger entry moving karma from sender to receiver
type Transaction struct {
	ID             int64     // Snowflake id
	WorkspaceID    int64     // Workspace both parties belong to
	SenderID       int64     // Profile whose giving balance was debited
	ReceiverID     int64     // Profile whose redeemable balance was credited
	Amount         int64     // Always positive
	Message        string    // Optional note
	IdempotencyKey string    // Optional client key, unique per sender
	CreatedAt      time.Time // Commit time, UTC
}

// NewTransaction creates a ledger entry after checking its structural invariants
func NewTransaction(
	id, workspaceID, senderID, receiverID, amount int64,
	message, idempotencyKey string,
	createdAt time.Time,
) (*Transaction, error) {
	if id <= 0 || workspaceID <= 0 {
		return nil, fmt.Errorf("%w: transaction and workspace ids must be positive", errs.ErrInvalidRequest)
	}
	if senderID == receiverID {
		return nil, errs.NewValidationError(MsgSelfTransfer)
	}
	if amount <= 0 {
		return nil, errs.NewValidationError(MsgAmountNotPositive)
	}
	message = strings.TrimSpace(message)
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, errs.NewValidationError(MessageTooLong(MaxMessageLength))
	}
	if len(idempotencyKey) > MaxIdempotencyKeyLength {
		return nil, fmt.Errorf("%w: idempotency key longer than %d bytes", errs.ErrInvalidRequest, MaxIdempotencyKeyLength)
	}

	return &Transaction{
		ID:             id,
		WorkspaceID:    workspaceID,
		SenderID:       senderID,
		ReceiverID:     receiverID,
		Amount:         amount,
		Message:        message,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      createdAt.UTC(),
	}, nil
}

// Direction returns "sent" or "received" relative to profileID, or "" when unrelated
func (t *Transaction) Direction(profileID int64) string {
	switch profileID {
	case t.SenderID:
		return string(DirectionSent)
	case t.ReceiverID:
		return string(DirectionReceived)
	}
	return ""
}
