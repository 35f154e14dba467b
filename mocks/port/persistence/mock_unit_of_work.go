package mocks

import (
	context "context"

	persistence "github.com/claimsy/karma/internal/domain/port/persistence"
	mock "github.com/stretchr/testify/mock"
)

// MockUnitOfWork is a mock type for the UnitOfWork type
type MockUnitOfWork struct {
	mock.Mock
}

// Begin provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	ret := _m.Called(ctx)

	var r0 context.Context
	if rf, ok := ret.Get(0).(func(context.Context) context.Context); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).(context.Context)
	}
	return r0, ret.Error(1)
}

// Commit provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Commit(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Rollback provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) Rollback(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// SavePoint provides a mock function with given fields: ctx, name
func (_m *MockUnitOfWork) SavePoint(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)
	return ret.Error(0)
}

// RollbackTo provides a mock function with given fields: ctx, name
func (_m *MockUnitOfWork) RollbackTo(ctx context.Context, name string) error {
	ret := _m.Called(ctx, name)
	return ret.Error(0)
}

// GetAccountRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetAccountRepository(ctx context.Context) persistence.AccountRepository {
	ret := _m.Called(ctx)

	var r0 persistence.AccountRepository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.AccountRepository)
	}
	return r0
}

// GetWorkspaceRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetWorkspaceRepository(ctx context.Context) persistence.WorkspaceRepository {
	ret := _m.Called(ctx)

	var r0 persistence.WorkspaceRepository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.WorkspaceRepository)
	}
	return r0
}

// GetTransactionRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetTransactionRepository(ctx context.Context) persistence.TransactionRepository {
	ret := _m.Called(ctx)

	var r0 persistence.TransactionRepository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.TransactionRepository)
	}
	return r0
}

// GetDailyUsageRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetDailyUsageRepository(ctx context.Context) persistence.DailyUsageRepository {
	ret := _m.Called(ctx)

	var r0 persistence.DailyUsageRepository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.DailyUsageRepository)
	}
	return r0
}

// GetResetHistoryRepository provides a mock function with given fields: ctx
func (_m *MockUnitOfWork) GetResetHistoryRepository(ctx context.Context) persistence.ResetHistoryRepository {
	ret := _m.Called(ctx)

	var r0 persistence.ResetHistoryRepository
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.ResetHistoryRepository)
	}
	return r0
}

// NewMockUnitOfWork creates a new instance of MockUnitOfWork. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUnitOfWork(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
