package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	usecase "github.com/claimsy/karma/internal/domain/port/usecase"
	mock "github.com/stretchr/testify/mock"
)

// MockAllowanceUseCase is a mock type for the AllowanceUseCase type
type MockAllowanceUseCase struct {
	mock.Mock
}

// ResetAllWorkspacesAllowances provides a mock function with given fields: ctx, trigger
func (_m *MockAllowanceUseCase) ResetAllWorkspacesAllowances(ctx context.Context, trigger entity.ResetTrigger) ([]entity.ResetResult, error) {
	ret := _m.Called(ctx, trigger)

	var r0 []entity.ResetResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.ResetResult)
	}
	return r0, ret.Error(1)
}

// ManualWorkspaceReset provides a mock function with given fields: ctx, workspaceID, actorID
func (_m *MockAllowanceUseCase) ManualWorkspaceReset(ctx context.Context, workspaceID int64, actorID int64) (*entity.ResetResult, error) {
	ret := _m.Called(ctx, workspaceID, actorID)

	var r0 *entity.ResetResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.ResetResult)
	}
	return r0, ret.Error(1)
}

// GetResetHistory provides a mock function with given fields: ctx, workspaceID, limit
func (_m *MockAllowanceUseCase) GetResetHistory(ctx context.Context, workspaceID int64, limit int) (*usecase.ResetHistoryView, error) {
	ret := _m.Called(ctx, workspaceID, limit)

	var r0 *usecase.ResetHistoryView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.ResetHistoryView)
	}
	return r0, ret.Error(1)
}

// NewMockAllowanceUseCase creates a new instance of MockAllowanceUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAllowanceUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAllowanceUseCase {
	m := &MockAllowanceUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
