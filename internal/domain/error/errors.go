package error

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeValidation          = 4000
	CodeInvalidRequest      = 4001
	CodeUnauthorized        = 4010
	CodeForbidden           = 4030
	CodeAccountNotFound     = 4040
	CodeWorkspaceNotFound   = 4041
	CodeTransactionNotFound = 4042
	CodeNotFound            = 4049
	CodeConflict            = 4090
	CodeAlreadyReset        = 4091
	CodeRateLimited         = 4290

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeDatabaseConnection = 5030
)

// Base error types
var (
	// ErrValidation is returned when a transfer breaks one or more business rules
	ErrValidation = errors.New("validation failed")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnauthorized is returned when the caller could not be authenticated
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the caller lacks the role for an operation
	ErrForbidden = errors.New("forbidden")

	// ErrAccountNotFound is returned when the requested member account doesn't exist
	ErrAccountNotFound = errors.New("account not found")

	// ErrWorkspaceNotFound is returned when the requested workspace doesn't exist
	ErrWorkspaceNotFound = errors.New("workspace not found")

	// ErrTransactionNotFound is returned when the requested transaction doesn't exist
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotFound is returned when a generic resource is not found
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a concurrent modification prevented the operation
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrAlreadyReset is returned when a workspace already received this month's allowance
	ErrAlreadyReset = errors.New("workspace already reset this month")

	// ErrDuplicate is returned when a unique key is violated
	ErrDuplicate = errors.New("duplicate record")

	// ErrConstraintViolation is returned when a database constraint is violated
	ErrConstraintViolation = errors.New("database constraint violation")

	// ErrLockNotObtained is returned when a distributed lock is held elsewhere
	ErrLockNotObtained = errors.New("lock not obtained")

	// ErrRateLimited is returned when a caller exceeded its request budget
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrDatabaseConnection is returned when there's a problem connecting to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return CodeValidation
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUnauthorized):
		return CodeUnauthorized
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrAccountNotFound):
		return CodeAccountNotFound
	case errors.Is(err, ErrWorkspaceNotFound):
		return CodeWorkspaceNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionNotFound
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAlreadyReset):
		return CodeAlreadyReset
	case errors.Is(err, ErrConflict), errors.Is(err, ErrLockNotObtained), errors.Is(err, ErrDuplicate):
		return CodeConflict
	case errors.Is(err, ErrRateLimited):
		return CodeRateLimited
	case errors.Is(err, ErrDatabaseConnection):
		return CodeDatabaseConnection
	default:
		return CodeInternalServer
	}
}

// HTTPStatus maps a domain error to the HTTP status code returned to clients
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrAlreadyReset),
		errors.Is(err, ErrLockNotObtained), errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrDatabaseConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError carries the human-readable rule violations of a rejected transfer
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a validation error from one or more messages
func NewValidationError(messages ...string) error {
	return &ValidationError{Messages: messages}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(e.Messages, "; "))
}

// Is checks if the target error is an ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"messages":   e.Messages,
		"error_code": CodeValidation,
	}
}

// TransferError describes a failed transfer attempt
type TransferError struct {
	SenderID   int64
	ReceiverID int64
	Amount     int64
	Reason     string
	Err        error
}

// NewTransferError creates a detailed transfer error
func NewTransferError(senderID, receiverID, amount int64, reason string, err error) *TransferError {
	return &TransferError{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Amount:     amount,
		Reason:     reason,
		Err:        err,
	}
}

// Error implements the error interface for TransferError
func (e *TransferError) Error() string {
	return fmt.Sprintf("transfer of %d from %d to %d failed: %s - %v",
		e.Amount, e.SenderID, e.ReceiverID, e.Reason, e.Err)
}

// Unwrap returns the underlying error
func (e *TransferError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *TransferError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "transfer_error",
		"sender_id":   e.SenderID,
		"receiver_id": e.ReceiverID,
		"amount":      e.Amount,
		"reason":      e.Reason,
		"error":       e.Err.Error(),
		"error_code":  ErrorCode(e.Err),
	}
}

// ResetError describes a failure while resetting one workspace
type ResetError struct {
	WorkspaceID int64
	ResetMonth  string
	Err         error
}

// NewResetError creates a workspace reset error
func NewResetError(workspaceID int64, resetMonth string, err error) *ResetError {
	return &ResetError{WorkspaceID: workspaceID, ResetMonth: resetMonth, Err: err}
}

// Error implements the error interface
func (e *ResetError) Error() string {
	return fmt.Sprintf("reset of workspace %d for %s failed: %v", e.WorkspaceID, e.ResetMonth, e.Err)
}

// Unwrap returns the underlying error
func (e *ResetError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ResetError) LogFields() map[string]any {
	return map[string]any{
		"error_type":   "reset_error",
		"workspace_id": e.WorkspaceID,
		"reset_month":  e.ResetMonth,
		"error":        e.Err.Error(),
		"error_code":   ErrorCode(e.Err),
	}
}

// ValidationMessages extracts the rule violations from err, if any
func ValidationMessages(err error) []string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Messages
	}
	return nil
}

// IsValidationError checks if the error is a business rule violation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConflictError checks if the error is a concurrent modification conflict
func IsConflictError(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsNotFoundError checks if the error is any "not found" type of error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrAccountNotFound) ||
		errors.Is(err, ErrWorkspaceNotFound) ||
		errors.Is(err, ErrTransactionNotFound)
}
