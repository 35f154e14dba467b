package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	usecase "github.com/claimsy/karma/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockTransactionUseCase is a mock type for the TransactionUseCase type
type MockTransactionUseCase struct {
	mock.Mock
}

// ValidateTransaction provides a mock function with given fields: ctx, senderID, receiverID, amount
func (_m *MockTransactionUseCase) ValidateTransaction(ctx context.Context, senderID int64, receiverID int64, amount int64) (*entity.ValidationResult, error) {
	ret := _m.Called(ctx, senderID, receiverID, amount)

	var r0 *entity.ValidationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.ValidationResult)
	}
	return r0, ret.Error(1)
}

// ExecuteTransaction provides a mock function with given fields: ctx, req
func (_m *MockTransactionUseCase) ExecuteTransaction(ctx context.Context, req usecase.TransferRequest) (*usecase.TransferResult, error) {
	ret := _m.Called(ctx, req)

	var r0 *usecase.TransferResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.TransferResult)
	}
	return r0, ret.Error(1)
}

// NewMockTransactionUseCase creates a new instance of MockTransactionUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionUseCase {
	m := &MockTransactionUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockLedgerUseCase is a mock type for the LedgerUseCase type
type MockLedgerUseCase struct {
	mock.Mock
}

// GetTransaction provides a mock function with given fields: ctx, workspaceID, transactionID
func (_m *MockLedgerUseCase) GetTransaction(ctx context.Context, workspaceID int64, transactionID int64) (*entity.Transaction, error) {
	ret := _m.Called(ctx, workspaceID, transactionID)

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// ListTransactions provides a mock function with given fields: ctx, filter
func (_m *MockLedgerUseCase) ListTransactions(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	ret := _m.Called(ctx, filter)

	var r0 *entity.TransactionPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.TransactionPage)
	}
	return r0, ret.Error(1)
}

// Leaderboard provides a mock function with given fields: ctx, workspaceID, period, limit
func (_m *MockLedgerUseCase) Leaderboard(ctx context.Context, workspaceID int64, period entity.LeaderboardPeriod, limit int) ([]entity.LeaderboardEntry, error) {
	ret := _m.Called(ctx, workspaceID, period, limit)

	var r0 []entity.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

// NewMockLedgerUseCase creates a new instance of MockLedgerUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLedgerUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLedgerUseCase {
	m := &MockLedgerUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockDailyLimitUseCase is a mock type for the DailyLimitUseCase type
type MockDailyLimitUseCase struct {
	mock.Mock
}

// GetDailyLimitInfo provides a mock function with given fields: ctx, profileID
func (_m *MockDailyLimitUseCase) GetDailyLimitInfo(ctx context.Context, profileID int64) (*entity.DailyLimitInfo, error) {
	ret := _m.Called(ctx, profileID)

	var r0 *entity.DailyLimitInfo
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.DailyLimitInfo)
	}
	return r0, ret.Error(1)
}

// NewMockDailyLimitUseCase creates a new instance of MockDailyLimitUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDailyLimitUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDailyLimitUseCase {
	m := &MockDailyLimitUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
