package transaction_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/claimsy/karma/internal/domain/entity"
	errs "github.com/claimsy/karma/internal/domain/error"
	"github.com/claimsy/karma/internal/domain/port/core"
	"github.com/claimsy/karma/internal/domain/port/usecase"
	"github.com/claimsy/karma/internal/domain/usecase/transaction"
	"github.com/claimsy/karma/internal/infrastructure/adapter/database"
	"github.com/claimsy/karma/internal/infrastructure/adapter/idgen"
	"github.com/claimsy/karma/internal/infrastructure/adapter/logger"
	"github.com/claimsy/karma/internal/infrastructure/adapter/model"
	mockcore "github.com/claimsy/karma/mocks/port/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

type serviceFixture struct {
	db      *gorm.DB
	service *transaction.Service
}

// newServiceFixture builds a service over a migrated sqlite database with workspace 1
// (allowance 100, bounds 5..20, 30% daily cap) holding members 10, 11 and 12 (inactive),
// and workspace 2 (no per-transfer bound, 100% daily cap) holding members 20 and 21.
func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()

	db := database.NewTestDB(t)
	database.CreateTestWorkspace(t, db, database.TestWorkspace{
		ID: 1, Name: "Acme", MonthlyAllowance: 100, MinAmount: 5, MaxAmount: 20, DailyLimitPercentage: 30,
	})
	database.CreateTestWorkspace(t, db, database.TestWorkspace{
		ID: 2, Name: "Globex", MonthlyAllowance: 100, MinAmount: 1, MaxAmount: 100, DailyLimitPercentage: 100,
	})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 10, WorkspaceID: 1, GivingBalance: 100})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 11, WorkspaceID: 1, GivingBalance: 100})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 12, WorkspaceID: 1, GivingBalance: 100, Inactive: true})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 20, WorkspaceID: 2, GivingBalance: 100})
	database.CreateTestAccount(t, db, database.TestAccount{ID: 21, WorkspaceID: 2})

	clock := mockcore.NewMockTimeProvider(t)
	clock.On("Now").Return(fixedNow).Maybe()
	clock.On("Since", mock.Anything).Return(core.Duration(0)).Maybe()
	clock.On("After", mock.Anything).Return(func(core.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- fixedNow
		return ch
	}).Maybe()

	ids, err := idgen.NewSnowflakeGenerator(1)
	require.NoError(t, err)

	noop := logger.NewNoopLogger()
	uow := database.NewUnitOfWork(db, noop, clock)
	return &serviceFixture{
		db:      db,
		service: transaction.NewTransactionService(uow, ids, clock, noop, transaction.DefaultConfig()),
	}
}

func (f *serviceFixture) send(t *testing.T, sender, receiver, amount int64) (*usecase.TransferResult, error) {
	t.Helper()
	return f.service.ExecuteTransaction(context.Background(), usecase.TransferRequest{
		SenderID: sender, ReceiverID: receiver, Amount: amount, Message: "thanks",
	})
}

func TestService_DailyCapAcrossTransfers(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.send(t, 10, 11, 20)
	require.NoError(t, err)

	_, err = f.send(t, 10, 11, 15)
	require.True(t, errs.IsValidationError(err))
	assert.Equal(t, []string{"Daily limit exceeded: 10 karma remaining today"}, errs.ValidationMessages(err))

	_, err = f.send(t, 10, 11, 10)
	require.NoError(t, err)

	giving, _ := database.AccountBalances(t, f.db, 10)
	_, redeemable := database.AccountBalances(t, f.db, 11)
	assert.Equal(t, int64(70), giving)
	assert.Equal(t, int64(30), redeemable)

	info, err := f.service.GetDailyLimitInfo(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(30), info.DailyLimit)
	assert.Equal(t, int64(30), info.AmountSentToday)
	assert.Equal(t, int64(0), info.RemainingLimit)
	assert.True(t, decimal.NewFromInt(100).Equal(info.PercentageUsed))
	assert.Equal(t, "2026-03-14", info.Date)
}

func TestService_AmountBounds(t *testing.T) {
	testCases := []struct {
		amount int64
		valid  bool
	}{
		{amount: 4, valid: false},
		{amount: 5, valid: true},
		{amount: 20, valid: true},
		{amount: 21, valid: false},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("amount %d", tc.amount), func(t *testing.T) {
			f := newServiceFixture(t)

			_, err := f.send(t, 10, 11, tc.amount)
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, []string{"Amount must be between 5 and 20 karma"}, errs.ValidationMessages(err))
			giving, _ := database.AccountBalances(t, f.db, 10)
			assert.Equal(t, int64(100), giving)
		})
	}
}

func TestService_RejectedTransfers(t *testing.T) {
	f := newServiceFixture(t)

	testCases := []struct {
		name     string
		sender   int64
		receiver int64
		expected string
	}{
		{name: "self transfer", sender: 10, receiver: 10, expected: entity.MsgSelfTransfer},
		{name: "other workspace", sender: 10, receiver: 20, expected: entity.MsgSameWorkspace},
		{name: "inactive receiver", sender: 10, receiver: 12, expected: entity.MsgReceiverInactive},
		{name: "inactive sender", sender: 12, receiver: 10, expected: entity.MsgSenderInactive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.send(t, tc.sender, tc.receiver, 10)
			require.True(t, errs.IsValidationError(err), "got %v", err)
			assert.Contains(t, errs.ValidationMessages(err), tc.expected)
		})
	}

	_, err := f.send(t, 10, 999, 10)
	assert.ErrorIs(t, err, errs.ErrAccountNotFound)

	giving, _ := database.AccountBalances(t, f.db, 10)
	assert.Equal(t, int64(100), giving)
}

func TestService_IdempotentReplay(t *testing.T) {
	f := newServiceFixture(t)
	req := usecase.TransferRequest{SenderID: 10, ReceiverID: 11, Amount: 10, IdempotencyKey: "tap-1"}

	first, err := f.service.ExecuteTransaction(context.Background(), req)
	require.NoError(t, err)
	second, err := f.service.ExecuteTransaction(context.Background(), req)
	require.NoError(t, err)

	assert.False(t, first.Replayed)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.Transaction.ID, second.Transaction.ID)

	giving, _ := database.AccountBalances(t, f.db, 10)
	assert.Equal(t, int64(90), giving)

	req.Amount = 15
	_, err = f.service.ExecuteTransaction(context.Background(), req)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)
}

// sendConcurrently fires attempts identical transfers at once and counts the outcomes
func (f *serviceFixture) sendConcurrently(t *testing.T, attempts int, sender, receiver, amount int64) (succeeded int, rejected []error) {
	t.Helper()

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.ExecuteTransaction(context.Background(), usecase.TransferRequest{
				SenderID: sender, ReceiverID: receiver, Amount: amount,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
				return
			}
			rejected = append(rejected, err)
		}()
	}
	wg.Wait()
	return succeeded, rejected
}

func (f *serviceFixture) ledgerRows(t *testing.T, sender int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Transaction{}).Where("sender_id = ?", sender).Count(&n).Error)
	return n
}

func TestService_ConcurrentSendsNeverOverdraw(t *testing.T) {
	f := newServiceFixture(t)
	const attempts = 20

	// balance 100 and a 100% cap: the balance is the binding constraint
	succeeded, rejected := f.sendConcurrently(t, attempts, 20, 21, 10)

	assert.Equal(t, 10, succeeded)
	require.Len(t, rejected, attempts-10)
	for _, err := range rejected {
		require.True(t, errs.IsValidationError(err), "got %v", err)
		assert.Contains(t, errs.ValidationMessages(err), entity.MsgInsufficientBalance)
	}

	giving, _ := database.AccountBalances(t, f.db, 20)
	_, redeemable := database.AccountBalances(t, f.db, 21)
	assert.Equal(t, int64(0), giving)
	assert.Equal(t, int64(100), redeemable)
	assert.Equal(t, int64(succeeded), f.ledgerRows(t, 20))

	info, err := f.service.GetDailyLimitInfo(context.Background(), 20)
	require.NoError(t, err)
	assert.Equal(t, int64(succeeded)*10, info.AmountSentToday)
}

func TestService_ConcurrentSendsStopAtDailyCap(t *testing.T) {
	f := newServiceFixture(t)
	const attempts = 20

	// balance 100 but a 30% cap of the 100 allowance: only six sends of 5 fit today
	succeeded, rejected := f.sendConcurrently(t, attempts, 10, 11, 5)

	assert.Equal(t, 6, succeeded)
	require.Len(t, rejected, attempts-6)
	for _, err := range rejected {
		require.True(t, errs.IsValidationError(err), "got %v", err)
		assert.Equal(t, []string{"Daily limit exceeded: 0 karma remaining today"}, errs.ValidationMessages(err))
	}

	giving, _ := database.AccountBalances(t, f.db, 10)
	_, redeemable := database.AccountBalances(t, f.db, 11)
	assert.Equal(t, int64(70), giving)
	assert.Equal(t, int64(30), redeemable)
	assert.Equal(t, int64(succeeded), f.ledgerRows(t, 10))

	info, err := f.service.GetDailyLimitInfo(context.Background(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(30), info.AmountSentToday)
	assert.Equal(t, int64(0), info.RemainingLimit)
}

func TestService_LedgerAndLeaderboard(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	sent, err := f.send(t, 10, 11, 10)
	require.NoError(t, err)
	_, err = f.send(t, 11, 10, 5)
	require.NoError(t, err)

	txn, err := f.service.GetTransaction(ctx, 1, sent.Transaction.ID)
	require.NoError(t, err)
	assert.Equal(t, "thanks", txn.Message)

	_, err = f.service.GetTransaction(ctx, 2, sent.Transaction.ID)
	assert.ErrorIs(t, err, errs.ErrTransactionNotFound)

	page, err := f.service.ListTransactions(ctx, entity.TransactionFilter{
		WorkspaceID: 1, ProfileID: 10, Direction: entity.DirectionSent, View: entity.ViewYou,
	})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 1)
	assert.Equal(t, int64(1), page.Pagination.Total)

	_, err = f.service.ListTransactions(ctx, entity.TransactionFilter{WorkspaceID: 1, ProfileID: 10, Direction: "sideways"})
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	board, err := f.service.Leaderboard(ctx, 1, entity.PeriodMonth, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, int64(11), board[0].ProfileID)
	assert.Equal(t, int64(10), board[0].TotalReceived)
	assert.Equal(t, 1, board[0].Rank)

	_, err = f.service.Leaderboard(ctx, 1, "weekly", 10)
	assert.ErrorIs(t, err, errs.ErrInvalidRequest)

	result, err := f.service.ValidateTransaction(ctx, 10, 11, 25)
	require.NoError(t, err)
	assert.False(t, result.Valid)
}
