package mocks

import (
	context "context"
	time "time"

	entity "github.com/claimsy/karma/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepository type
type MockTransactionRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, txn
func (_m *MockTransactionRepository) Create(ctx context.Context, txn *entity.Transaction) error {
	ret := _m.Called(ctx, txn)
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*entity.Transaction, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// GetBySenderAndKey provides a mock function with given fields: ctx, senderID, idempotencyKey
func (_m *MockTransactionRepository) GetBySenderAndKey(ctx context.Context, senderID int64, idempotencyKey string) (*entity.Transaction, error) {
	ret := _m.Called(ctx, senderID, idempotencyKey)

	var r0 *entity.Transaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Transaction)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, filter
func (_m *MockTransactionRepository) List(ctx context.Context, filter entity.TransactionFilter) (*entity.TransactionPage, error) {
	ret := _m.Called(ctx, filter)

	var r0 *entity.TransactionPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.TransactionPage)
	}
	return r0, ret.Error(1)
}

// Leaderboard provides a mock function with given fields: ctx, workspaceID, since, limit
func (_m *MockTransactionRepository) Leaderboard(ctx context.Context, workspaceID int64, since *time.Time, limit int) ([]entity.LeaderboardEntry, error) {
	ret := _m.Called(ctx, workspaceID, since, limit)

	var r0 []entity.LeaderboardEntry
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.LeaderboardEntry)
	}
	return r0, ret.Error(1)
}

// NewMockTransactionRepository creates a new instance of MockTransactionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
