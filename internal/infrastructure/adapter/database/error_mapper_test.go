package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	domainErr "github.com/claimsy/karma/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorMapper_MapError(t *testing.T) {
	mapper := NewErrorMapper()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, domainErr.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, domainErr.ErrDuplicate},
		{"translated check", gorm.ErrCheckConstraintViolated, domainErr.ErrConstraintViolation},
		{"postgres deadlock", errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), domainErr.ErrConflict},
		{"postgres serialization", errors.New("ERROR: could not serialize access due to concurrent update"), domainErr.ErrConflict},
		{"postgres lock timeout", errors.New("ERROR: canceling statement due to lock timeout"), domainErr.ErrConflict},
		{"sqlite busy", errors.New("database is locked"), domainErr.ErrConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: transactions.sender_id"), domainErr.ErrDuplicate},
		{"postgres check", errors.New(`new row violates check constraint "chk_accounts_giving_balance"`), domainErr.ErrConstraintViolation},
		{"refused", errors.New("dial tcp: connection refused"), domainErr.ErrDatabaseConnection},
		{"context deadline", context.DeadlineExceeded, domainErr.ErrDatabaseConnection},
		{"unknown", errors.New("something odd"), domainErr.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapper.MapError(tt.err, "test"), tt.want)
		})
	}
}

func TestErrorMapper_PassesDomainErrorsThrough(t *testing.T) {
	mapper := NewErrorMapper()
	err := fmt.Errorf("wrapped: %w", domainErr.ErrAlreadyReset)

	assert.Same(t, err, mapper.MapError(err, "test"))
	assert.Nil(t, mapper.MapError(nil, "test"))
}

func TestErrorMapper_MapEntityNotFoundError(t *testing.T) {
	mapper := NewErrorMapper()

	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeAccount), domainErr.ErrAccountNotFound)
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeWorkspace), domainErr.ErrWorkspaceNotFound)
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeTransaction), domainErr.ErrTransactionNotFound)
	assert.ErrorIs(t, mapper.MapEntityNotFoundError(gorm.ErrRecordNotFound, EntityTypeResetHistory), domainErr.ErrNotFound)
}

func TestErrorMapper_IsConflict(t *testing.T) {
	mapper := NewErrorMapper()

	assert.True(t, mapper.IsConflict(errors.New("deadlock detected")))
	assert.True(t, mapper.IsConflict(domainErr.ErrConflict))
	assert.False(t, mapper.IsConflict(errors.New("syntax error")))
}
