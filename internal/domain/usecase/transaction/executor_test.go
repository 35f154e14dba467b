package transaction

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	mockcore "github.com/claimsy/karma/mocks/port/core"
	mockpersistence "github.com/claimsy/karma/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type txCtxKey struct{}

type executorMocks struct {
	uow          *mockpersistence.MockUnitOfWork
	accounts     *mockpersistence.MockAccountRepository
	workspaces   *mockpersistence.MockWorkspaceRepository
	transactions *mockpersistence.MockTransactionRepository
	usage        *mockpersistence.MockDailyUsageRepository
	idGenerator  *mockcore.MockIDGenerator
	timeProvider *mockcore.MockTimeProvider
	txCtx        context.Context
	now          time.Time
}

func newExecutorMocks(t *testing.T) *executorMocks {
	m := &executorMocks{
		uow:          mockpersistence.NewMockUnitOfWork(t),
		accounts:     mockpersistence.NewMockAccountRepository(t),
		workspaces:   mockpersistence.NewMockWorkspaceRepository(t),
		transactions: mockpersistence.NewMockTransactionRepository(t),
		usage:        mockpersistence.NewMockDailyUsageRepository(t),
		idGenerator:  mockcore.NewMockIDGenerator(t),
		timeProvider: mockcore.NewMockTimeProvider(t),
		txCtx:        context.WithValue(context.Background(), txCtxKey{}, "tx"),
		now:          time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	m.timeProvider.On("Now").Return(m.now).Maybe()
	m.uow.On("GetAccountRepository", mock.Anything).Return(m.accounts).Maybe()
	m.uow.On("GetWorkspaceRepository", mock.Anything).Return(m.workspaces).Maybe()
	m.uow.On("GetTransactionRepository", mock.Anything).Return(m.transactions).Maybe()
	m.uow.On("GetDailyUsageRepository", mock.Anything).Return(m.usage).Maybe()
	return m
}

func (m *executorMocks) executor(t *testing.T) *TransactionExecutor {
	config := DefaultConfig()
	return NewTransactionExecutor(
		m.uow, m.idGenerator, m.timeProvider, NewTransactionValidator(config),
		mockcore.NewMockLogger(t).AllowAll(), config,
	)
}

// expectSnapshot sets up a valid locked read of sender 1 and receiver 2
func (m *executorMocks) expectSnapshot() {
	m.accounts.On("LockByID", m.txCtx, int64(1)).Return(&entity.Account{
		ID: 1, WorkspaceID: 10, Role: entity.RoleEmployee, GivingBalance: 100, Active: true,
	}, nil)
	m.accounts.On("LockByID", m.txCtx, int64(2)).Return(&entity.Account{
		ID: 2, WorkspaceID: 10, Role: entity.RoleEmployee, Active: true,
	}, nil)
	m.workspaces.On("GetSettings", m.txCtx, int64(10)).Return(&entity.WorkspaceSettings{
		WorkspaceID: 10, CurrencyName: "karma", MonthlyAllowance: 100,
		MinTransactionAmount: 5, MaxTransactionAmount: 20, DailyLimitPercentage: 30,
	}, nil)
	m.usage.On("GetAmountSent", m.txCtx, int64(1), m.now).Return(int64(0), nil)
}

func firedAfter(core.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

func TestExecuteTransaction_RetriesConflicts(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Twice()
	m.expectSnapshot()
	m.idGenerator.On("NextID").Return(int64(500))

	m.accounts.On("DebitGiving", m.txCtx, int64(1), int64(10)).
		Return(fmt.Errorf("%w: deadlock detected", errs.ErrConflict)).Once()
	m.uow.On("Rollback", m.txCtx).Return(nil).Once()
	m.timeProvider.On("After", 20*core.Millisecond).Return(firedAfter).Once()

	m.accounts.On("DebitGiving", m.txCtx, int64(1), int64(10)).Return(nil).Once()
	m.accounts.On("CreditRedeemable", m.txCtx, int64(2), int64(10)).Return(nil).Once()
	m.usage.On("Increment", m.txCtx, int64(1), m.now, int64(10)).Return(nil).Once()
	m.transactions.On("Create", m.txCtx, mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.ID == 500 && txn.WorkspaceID == 10 && txn.Amount == 10
	})).Return(nil).Once()
	m.uow.On("Commit", m.txCtx).Return(nil).Once()

	result, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 2, Amount: 10})

	require.NoError(t, err)
	assert.False(t, result.Replayed)
	assert.Equal(t, int64(500), result.Transaction.ID)
}

func TestExecuteTransaction_GivesUpAfterMaxRetries(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Times(3)
	m.expectSnapshot()
	m.idGenerator.On("NextID").Return(int64(500))
	m.accounts.On("DebitGiving", m.txCtx, int64(1), int64(10)).Return(errs.ErrConflict)
	m.uow.On("Rollback", m.txCtx).Return(nil).Times(3)
	m.timeProvider.On("After", 20*core.Millisecond).Return(firedAfter).Once()
	m.timeProvider.On("After", 40*core.Millisecond).Return(firedAfter).Once()

	_, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 2, Amount: 10})

	assert.ErrorIs(t, err, errs.ErrConflict)
	assert.True(t, errs.IsConflictError(err))

	var transferErr *errs.TransferError
	require.ErrorAs(t, err, &transferErr)
	assert.Equal(t, int64(1), transferErr.SenderID)
	assert.Equal(t, int64(2), transferErr.ReceiverID)
	assert.Equal(t, int64(10), transferErr.Amount)
	assert.Equal(t, "gave up after 3 attempts", transferErr.Reason)
	assert.Equal(t, errs.CodeConflict, transferErr.LogFields()["error_code"])
}

func TestExecuteTransaction_UsageDayMatchesCreatedAt(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()

	// the clock crosses midnight between the first reading and any later one
	m.now = time.Date(2026, 3, 14, 23, 59, 59, 900_000_000, time.UTC)
	nextDay := time.Date(2026, 3, 15, 0, 0, 0, 100_000_000, time.UTC)
	calls := 0
	m.timeProvider = mockcore.NewMockTimeProvider(t)
	m.timeProvider.On("Now").Return(func() time.Time {
		calls++
		if calls == 1 {
			return m.now
		}
		return nextDay
	})

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Once()
	m.expectSnapshot()
	m.idGenerator.On("NextID").Return(int64(500))
	m.accounts.On("DebitGiving", m.txCtx, int64(1), int64(10)).Return(nil).Once()
	m.accounts.On("CreditRedeemable", m.txCtx, int64(2), int64(10)).Return(nil).Once()
	m.usage.On("Increment", m.txCtx, int64(1), m.now, int64(10)).Return(nil).Once()
	m.transactions.On("Create", m.txCtx, mock.MatchedBy(func(txn *entity.Transaction) bool {
		return txn.CreatedAt.Equal(m.now)
	})).Return(nil).Once()
	m.uow.On("Commit", m.txCtx).Return(nil).Once()

	result, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 2, Amount: 10})

	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", result.Transaction.CreatedAt.Format(time.DateOnly))
	assert.Equal(t, 1, calls)
}

func TestExecuteTransaction_ValidationIsNotRetried(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Once()
	m.expectSnapshot()
	m.uow.On("Rollback", m.txCtx).Return(nil).Once()

	_, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 2, Amount: 25})

	require.True(t, errs.IsValidationError(err))
	assert.Equal(t, []string{"Amount must be between 5 and 20 karma"}, errs.ValidationMessages(err))
}

func TestExecuteTransaction_InputRejectedBeforeDatabase(t *testing.T) {
	m := newExecutorMocks(t)
	executor := m.executor(t)
	ctx := context.Background()

	_, err := executor.ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 1, Amount: 0})
	assert.Equal(t, []string{entity.MsgAmountNotPositive, entity.MsgSelfTransfer}, errs.ValidationMessages(err))

	long := make([]rune, 501)
	for i := range long {
		long[i] = 'a'
	}
	_, err = executor.ExecuteTransaction(ctx, usecase.TransferRequest{SenderID: 1, ReceiverID: 2, Amount: 10, Message: string(long)})
	assert.Equal(t, []string{"Message must be at most 500 characters"}, errs.ValidationMessages(err))

	m.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestExecuteTransaction_ReplaysIdempotencyKey(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()
	stored := &entity.Transaction{ID: 77, WorkspaceID: 10, SenderID: 1, ReceiverID: 2, Amount: 10, IdempotencyKey: "retry-1"}

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Once()
	m.transactions.On("GetBySenderAndKey", m.txCtx, int64(1), "retry-1").Return(stored, nil).Once()
	m.uow.On("Commit", m.txCtx).Return(nil).Once()

	result, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{
		SenderID: 1, ReceiverID: 2, Amount: 10, IdempotencyKey: "retry-1",
	})

	require.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Same(t, stored, result.Transaction)
	m.accounts.AssertNotCalled(t, "DebitGiving", mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteTransaction_KeyRaceReturnsWinner(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()
	winner := &entity.Transaction{ID: 88, WorkspaceID: 10, SenderID: 1, ReceiverID: 2, Amount: 10, IdempotencyKey: "k"}

	m.uow.On("Begin", ctx).Return(m.txCtx, nil).Once()
	m.transactions.On("GetBySenderAndKey", m.txCtx, int64(1), "k").Return(nil, errs.ErrTransactionNotFound).Once()
	m.expectSnapshot()
	m.idGenerator.On("NextID").Return(int64(500))
	m.accounts.On("DebitGiving", m.txCtx, int64(1), int64(10)).Return(nil)
	m.accounts.On("CreditRedeemable", m.txCtx, int64(2), int64(10)).Return(nil)
	m.usage.On("Increment", m.txCtx, int64(1), m.now, int64(10)).Return(nil)
	m.transactions.On("Create", m.txCtx, mock.Anything).Return(fmt.Errorf("%w: unique", errs.ErrDuplicate))
	m.uow.On("Rollback", m.txCtx).Return(nil).Once()
	m.transactions.On("GetBySenderAndKey", ctx, int64(1), "k").Return(winner, nil).Once()

	result, err := m.executor(t).ExecuteTransaction(ctx, usecase.TransferRequest{
		SenderID: 1, ReceiverID: 2, Amount: 10, IdempotencyKey: "k",
	})

	require.NoError(t, err)
	assert.True(t, result.Replayed)
	assert.Equal(t, int64(88), result.Transaction.ID)
}

func TestValidateTransaction_UnknownReceiver(t *testing.T) {
	m := newExecutorMocks(t)
	ctx := context.Background()

	m.accounts.On("GetByID", ctx, int64(1)).Return(&entity.Account{ID: 1, WorkspaceID: 10, Active: true}, nil)
	m.accounts.On("GetByID", ctx, int64(2)).Return(nil, errs.ErrAccountNotFound)

	_, err := m.executor(t).ValidateTransaction(ctx, 1, 2, 10)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)
}

func TestValidateTransaction_LocksInAscendingOrder(t *testing.T) {
	m := newExecutorMocks(t)

	// Sender 2 pays receiver 1: row 1 must be locked first
	var order []int64
	lock := func(id int64, acc *entity.Account) {
		m.accounts.On("LockByID", m.txCtx, id).Run(func(mock.Arguments) { order = append(order, id) }).Return(acc, nil)
	}
	lock(1, &entity.Account{ID: 1, WorkspaceID: 10, Active: true})
	lock(2, &entity.Account{ID: 2, WorkspaceID: 10, GivingBalance: 100, Active: true})
	m.workspaces.On("GetSettings", m.txCtx, int64(10)).Return(&entity.WorkspaceSettings{
		WorkspaceID: 10, MonthlyAllowance: 100, MinTransactionAmount: 1, MaxTransactionAmount: 50, DailyLimitPercentage: 100,
	}, nil)
	m.usage.On("GetAmountSent", m.txCtx, int64(2), m.now).Return(int64(0), nil)

	snapshot, err := m.executor(t).loadSnapshot(m.txCtx, 2, 1, m.now, true)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, order)
	assert.Equal(t, int64(2), snapshot.Sender.ID)
	assert.Equal(t, int64(1), snapshot.Receiver.ID)
}
