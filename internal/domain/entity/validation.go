package entity

import "fmt"

// Rule violation messages shown to members
const (
	MsgAmountNotPositive   = "Amount must be a positive integer"
	MsgSelfTransfer        = "Cannot send to yourself"
	MsgSameWorkspace       = "Receiver must be in the same workspace"
	MsgSenderInactive      = "Sender account is inactive"
	MsgReceiverInactive    = "Receiver account is inactive"
	MsgInsufficientBalance = "Insufficient balance"
	MsgDepartmentRule      = "Employees can only send to members of other departments"
)

// AmountOutOfRange names the inclusive bounds a transfer must fall within
func AmountOutOfRange(min, max int64, currency string) string {
	return fmt.Sprintf("Amount must be between %d and %d %s", min, max, currency)
}

// DailyLimitExceeded names the allowance left for today
func DailyLimitExceeded(remaining int64, currency string) string {
	return fmt.Sprintf("Daily limit exceeded: %d %s remaining today", remaining, currency)
}

// NearDailyLimit warns that a transfer brings the member close to the cap
func NearDailyLimit(afterSend, limit int64, currency string) string {
	return fmt.Sprintf("You are close to your daily limit: %d of %d %s used after this transfer", afterSend, limit, currency)
}

// MessageTooLong rejects oversized transfer messages
func MessageTooLong(max int) string {
	return fmt.Sprintf("Message must be at most %d characters", max)
}

// ValidationResult is the outcome of checking a prospective transfer.
// Errors block the transfer; warnings are informational.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// NewValidationResult returns an empty, valid result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   []string{},
		Warnings: []string{},
	}
}

// AddError records a blocking violation
func (r *ValidationResult) AddError(message string) {
	r.Errors = append(r.Errors, message)
	r.Valid = false
}

// AddWarning records a non-blocking notice
func (r *ValidationResult) AddWarning(message string) {
	r.Warnings = append(r.Warnings, message)
}

// TransferSnapshot is the state a transfer is validated against
type TransferSnapshot struct {
	Sender    *Account
	Receiver  *Account
	Settings  *WorkspaceSettings // Settings of the sender's workspace
	SentToday int64              // Amount the sender already sent today, before this transfer
}
