package repository_test

import (
	"context"
	"testing"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/infrastructure/adapter/database"
	"github.com/claimsy/karma/internal/infrastructure/adapter/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_GetByID(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)
	ctx := context.Background()

	acc, err := repo.GetByID(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.WorkspaceID)
	assert.Equal(t, entity.RoleEmployee, acc.Role)
	assert.Equal(t, "eng", acc.Department)
	assert.True(t, acc.Active)

	_, err = repo.GetByID(ctx, 404)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestAccountRepository_LockByID(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)

	acc, err := repo.LockByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(100), acc.GivingBalance)
}

func TestAccountRepository_DebitGiving(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)
	ctx := context.Background()

	require.NoError(t, repo.DebitGiving(ctx, 10, 60))
	giving, _ := database.AccountBalances(t, db, 10)
	assert.Equal(t, int64(40), giving)

	err := repo.DebitGiving(ctx, 10, 41)
	assert.True(t, errs.IsValidationError(err))
	assert.Equal(t, []string{entity.MsgInsufficientBalance}, errs.ValidationMessages(err))

	giving, _ = database.AccountBalances(t, db, 10)
	assert.Equal(t, int64(40), giving)

	err = repo.DebitGiving(ctx, 404, 1)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestAccountRepository_Credits(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)
	ctx := context.Background()

	require.NoError(t, repo.CreditRedeemable(ctx, 11, 15))
	require.NoError(t, repo.AddGivingBalance(ctx, 11, 100))

	giving, redeemable := database.AccountBalances(t, db, 11)
	assert.Equal(t, int64(200), giving)
	assert.Equal(t, int64(15), redeemable)

	assert.ErrorIs(t, repo.CreditRedeemable(ctx, 404, 1), errs.ErrAccountNotFound)
	assert.ErrorIs(t, repo.AddGivingBalance(ctx, 11, -1), errs.ErrInvalidRequest)
}

func TestAccountRepository_ListActiveByWorkspace(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)

	accounts, err := repo.ListActiveByWorkspace(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, int64(10), accounts[0].ID)
	assert.Equal(t, int64(11), accounts[1].ID)
}

func TestAccountRepository_Create(t *testing.T) {
	db := seedWorkspace(t)
	repo := repository.NewAccountRepository(db, realClock, noopLogger)
	ctx := context.Background()

	acc, err := entity.NewAccount(30, 1, "Dana", "dana@example.com", entity.RoleAdmin, "ops", 100, realClock)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, acc))

	stored, err := repo.GetByID(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, "Dana", stored.DisplayName)
	assert.True(t, stored.IsAdmin())

	assert.ErrorIs(t, repo.Create(ctx, acc), errs.ErrDuplicate)
}
