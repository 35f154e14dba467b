package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErr "github.com/claimsy/karma/internal/domain/error"
	"gorm.io/gorm"
)

// EntityType represents the type of entity for errors mapping
type EntityType string

const (
	EntityTypeAccount      EntityType = "account"
	EntityTypeWorkspace    EntityType = "workspace"
	EntityTypeTransaction  EntityType = "transaction"
	EntityTypeResetHistory EntityType = "reset_history"
)

// ErrorMapper maps database errors to domain errors
type ErrorMapper struct{}

// NewErrorMapper creates a new ErrorMapper
func NewErrorMapper() *ErrorMapper {
	return &ErrorMapper{}
}

// MapError maps a database error to a domain error. Errors that already carry
// a domain sentinel pass through unchanged.
func (m *ErrorMapper) MapError(err error, operation string) error {
	if err == nil {
		return nil
	}
	if isDomainError(err) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainErr.ErrNotFound
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s operation: %s", domainErr.ErrDatabaseConnection, operation, err.Error())
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", domainErr.ErrDuplicate, err.Error())
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %s", domainErr.ErrConstraintViolation, err.Error())
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	// Transaction and locking errors
	case strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "serializ") ||
		strings.Contains(errMsg, "lock timeout") ||
		strings.Contains(errMsg, "database is locked"):
		return fmt.Errorf("%w: %s", domainErr.ErrConflict, err.Error())

	// Duplicate key errors
	case strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint"):
		return fmt.Errorf("%w: %s", domainErr.ErrDuplicate, err.Error())

	// Constraint violations
	case strings.Contains(errMsg, "check constraint") ||
		strings.Contains(errMsg, "foreign key constraint"):
		return fmt.Errorf("%w: %s", domainErr.ErrConstraintViolation, err.Error())

	// Connection issues
	case strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "no connection") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "database is closed"):
		return fmt.Errorf("%w: %s", domainErr.ErrDatabaseConnection, err.Error())

	// Timeout errors
	case strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "deadline exceeded"):
		return fmt.Errorf("%w: %s operation timed out", domainErr.ErrDatabaseConnection, operation)

	default:
		return fmt.Errorf("%w: %s: %s", domainErr.ErrInternalServer, operation, err.Error())
	}
}

// MapEntityNotFoundError maps database errors to specific entity not found errors
func (m *ErrorMapper) MapEntityNotFoundError(err error, entityType EntityType) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		switch entityType {
		case EntityTypeAccount:
			return domainErr.ErrAccountNotFound
		case EntityTypeWorkspace:
			return domainErr.ErrWorkspaceNotFound
		case EntityTypeTransaction:
			return domainErr.ErrTransactionNotFound
		default:
			return domainErr.ErrNotFound
		}
	}

	return m.MapError(err, string(entityType))
}

// IsConflict reports whether err is a lock or serialization conflict worth retrying
func (m *ErrorMapper) IsConflict(err error) bool {
	return errors.Is(m.MapError(err, "classify"), domainErr.ErrConflict)
}

var domainSentinels = []error{
	domainErr.ErrValidation,
	domainErr.ErrInvalidRequest,
	domainErr.ErrUnauthorized,
	domainErr.ErrForbidden,
	domainErr.ErrAccountNotFound,
	domainErr.ErrWorkspaceNotFound,
	domainErr.ErrTransactionNotFound,
	domainErr.ErrNotFound,
	domainErr.ErrConflict,
	domainErr.ErrAlreadyReset,
	domainErr.ErrDuplicate,
	domainErr.ErrConstraintViolation,
	domainErr.ErrLockNotObtained,
	domainErr.ErrDatabaseConnection,
	domainErr.ErrInternalServer,
}

func isDomainError(err error) bool {
	for _, sentinel := range domainSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
