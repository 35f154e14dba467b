package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepository type
type MockAccountRepository struct {
	mock.Mock
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*entity.Account, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Account)
	}
	return r0, ret.Error(1)
}

// LockByID provides a mock function with given fields: ctx, id
func (_m *MockAccountRepository) LockByID(ctx context.Context, id int64) (*entity.Account, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Account)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, account
func (_m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	ret := _m.Called(ctx, account)
	return ret.Error(0)
}

// ListActiveByWorkspace provides a mock function with given fields: ctx, workspaceID
func (_m *MockAccountRepository) ListActiveByWorkspace(ctx context.Context, workspaceID int64) ([]*entity.Account, error) {
	ret := _m.Called(ctx, workspaceID)

	var r0 []*entity.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Account)
	}
	return r0, ret.Error(1)
}

// DebitGiving provides a mock function with given fields: ctx, id, amount
func (_m *MockAccountRepository) DebitGiving(ctx context.Context, id int64, amount int64) error {
	ret := _m.Called(ctx, id, amount)
	return ret.Error(0)
}

// CreditRedeemable provides a mock function with given fields: ctx, id, amount
func (_m *MockAccountRepository) CreditRedeemable(ctx context.Context, id int64, amount int64) error {
	ret := _m.Called(ctx, id, amount)
	return ret.Error(0)
}

// AddGivingBalance provides a mock function with given fields: ctx, id, amount
func (_m *MockAccountRepository) AddGivingBalance(ctx context.Context, id int64, amount int64) error {
	ret := _m.Called(ctx, id, amount)
	return ret.Error(0)
}

// NewMockAccountRepository creates a new instance of MockAccountRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAccountRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
