package repository

import (
	"errors"
	"testing"

	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestErrorClassifier_ToDomain(t *testing.T) {
	c := NewErrorClassifier()

	assert.Nil(t, c.ToDomain(nil, errs.ErrAccountNotFound))
	assert.ErrorIs(t, c.ToDomain(gorm.ErrRecordNotFound, errs.ErrAccountNotFound), errs.ErrAccountNotFound)
	assert.ErrorIs(t, c.ToDomain(gorm.ErrDuplicatedKey, errs.ErrNotFound), errs.ErrDuplicate)
	assert.ErrorIs(t, c.ToDomain(errors.New(`ERROR: duplicate key value violates unique constraint "accounts_pkey" (SQLSTATE 23505)`), errs.ErrNotFound), errs.ErrDuplicate)
	assert.ErrorIs(t, c.ToDomain(errors.New("ERROR: deadlock detected (SQLSTATE 40P01)"), errs.ErrNotFound), errs.ErrConflict)
	assert.ErrorIs(t, c.ToDomain(errors.New("database is locked"), errs.ErrNotFound), errs.ErrConflict)
	assert.ErrorIs(t, c.ToDomain(gorm.ErrCheckConstraintViolated, errs.ErrNotFound), errs.ErrConstraintViolation)
	assert.ErrorIs(t, c.ToDomain(errors.New("dial tcp 10.0.0.1:5432: i/o timeout"), errs.ErrNotFound), errs.ErrDatabaseConnection)
}

func TestErrorClassifier_Classify(t *testing.T) {
	c := NewErrorClassifier()

	assert.Equal(t, DuplicateKeyError, c.Classify(errors.New("UNIQUE constraint failed: accounts.id")))
	assert.Equal(t, LockError, c.Classify(errors.New("could not serialize access due to concurrent update")))
	assert.Equal(t, ConstraintError, c.Classify(errors.New("CHECK constraint failed: chk_accounts_giving_balance")))
	assert.Equal(t, ConnectionError, c.Classify(errors.New("connection refused")))
	assert.Equal(t, ErrorType(""), c.Classify(errors.New("near \"SELEC\": syntax error")))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, `%thanks%`, likePattern("Thanks"))
	assert.Equal(t, `%100\%%`, likePattern("100%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
}
