package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	usecase "github.com/claimsy/karma/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockMemberUseCase is a mock type for the MemberUseCase type
type MockMemberUseCase struct {
	mock.Mock
}

// GetActiveMember provides a mock function with given fields: ctx, profileID
func (_m *MockMemberUseCase) GetActiveMember(ctx context.Context, profileID int64) (*entity.Account, error) {
	ret := _m.Called(ctx, profileID)

	var r0 *entity.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Account)
	}
	return r0, ret.Error(1)
}

// GetBalance provides a mock function with given fields: ctx, profileID
func (_m *MockMemberUseCase) GetBalance(ctx context.Context, profileID int64) (*usecase.MemberBalance, error) {
	ret := _m.Called(ctx, profileID)

	var r0 *usecase.MemberBalance
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.MemberBalance)
	}
	return r0, ret.Error(1)
}

// NewMockMemberUseCase creates a new instance of MockMemberUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMemberUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMemberUseCase {
	m := &MockMemberUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
