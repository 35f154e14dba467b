package transaction

import (
	"strings"
	"unicode/utf8"

	"github.com/claimsy/karma/internal/domain/entity"
)

// TransactionValidator evaluates the transfer rules against a snapshot.
// It has no side effects; the executor re-runs it under row locks.
type TransactionValidator struct {
	config Config
}

// NewTransactionValidator creates a new TransactionValidator
func NewTransactionValidator(config Config) *TransactionValidator {
	return &TransactionValidator{config: config.normalized()}
}

// ValidateInput checks the parts of a request that need no stored state
func (v *TransactionValidator) ValidateInput(senderID, receiverID, amount int64) *entity.ValidationResult {
	result := entity.NewValidationResult()
	if amount <= 0 {
		result.AddError(entity.MsgAmountNotPositive)
	}
	if senderID == receiverID {
		result.AddError(entity.MsgSelfTransfer)
	}
	return result
}

// ValidateMessage checks the optional transfer message
func (v *TransactionValidator) ValidateMessage(message string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(message)) > v.config.MaxMessageLength {
		return []string{entity.MessageTooLong(v.config.MaxMessageLength)}
	}
	return nil
}

// Validate collects every rule violation and warning for sending amount.
// All checks run independently so the caller sees the full list.
func (v *TransactionValidator) Validate(snapshot entity.TransferSnapshot, amount int64) *entity.ValidationResult {
	result := v.ValidateInput(snapshot.Sender.ID, snapshot.Receiver.ID, amount)
	sender, receiver, settings := snapshot.Sender, snapshot.Receiver, snapshot.Settings

	if !sender.Active {
		result.AddError(entity.MsgSenderInactive)
	}
	if !receiver.Active {
		result.AddError(entity.MsgReceiverInactive)
	}
	if sender.WorkspaceID != receiver.WorkspaceID {
		result.AddError(entity.MsgSameWorkspace)
	}

	if !settings.AmountInRange(amount) {
		result.AddError(entity.AmountOutOfRange(settings.MinTransactionAmount, settings.MaxTransactionAmount, settings.CurrencyName))
	}

	if amount > 0 && !sender.CanSend(amount) {
		result.AddError(entity.MsgInsufficientBalance)
	}

	v.checkDailyLimit(result, snapshot, amount)

	if v.config.EnforceDepartmentRule && sender.Role == entity.RoleEmployee &&
		sender.Department != "" && strings.EqualFold(sender.Department, receiver.Department) {
		result.AddError(entity.MsgDepartmentRule)
	}

	return result
}

func (v *TransactionValidator) checkDailyLimit(result *entity.ValidationResult, snapshot entity.TransferSnapshot, amount int64) {
	if amount <= 0 {
		return
	}

	settings := snapshot.Settings
	limit := settings.DailyLimit()
	afterSend := snapshot.SentToday + amount

	if afterSend > limit {
		remaining := limit - snapshot.SentToday
		if remaining < 0 {
			remaining = 0
		}
		result.AddError(entity.DailyLimitExceeded(remaining, settings.CurrencyName))
		return
	}

	// Warning band: afterSend / limit >= threshold%
	if limit > 0 && afterSend*100 >= limit*int64(v.config.WarningThresholdPercent) {
		result.AddWarning(entity.NearDailyLimit(afterSend, limit, settings.CurrencyName))
	}
}
