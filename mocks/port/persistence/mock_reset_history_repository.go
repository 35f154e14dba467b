package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockResetHistoryRepository is a mock type for the ResetHistoryRepository type
type MockResetHistoryRepository struct {
	mock.Mock
}

// Claim provides a mock function with given fields: ctx, history
func (_m *MockResetHistoryRepository) Claim(ctx context.Context, history *entity.ResetHistory) error {
	ret := _m.Called(ctx, history)
	return ret.Error(0)
}

// Update provides a mock function with given fields: ctx, history
func (_m *MockResetHistoryRepository) Update(ctx context.Context, history *entity.ResetHistory) error {
	ret := _m.Called(ctx, history)
	return ret.Error(0)
}

// Exists provides a mock function with given fields: ctx, workspaceID, resetMonth
func (_m *MockResetHistoryRepository) Exists(ctx context.Context, workspaceID int64, resetMonth string) (bool, error) {
	ret := _m.Called(ctx, workspaceID, resetMonth)
	return ret.Bool(0), ret.Error(1)
}

// ListByWorkspace provides a mock function with given fields: ctx, workspaceID, limit
func (_m *MockResetHistoryRepository) ListByWorkspace(ctx context.Context, workspaceID int64, limit int) ([]*entity.ResetHistory, error) {
	ret := _m.Called(ctx, workspaceID, limit)

	var r0 []*entity.ResetHistory
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.ResetHistory)
	}
	return r0, ret.Error(1)
}

// NewMockResetHistoryRepository creates a new instance of MockResetHistoryRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockResetHistoryRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockResetHistoryRepository {
	m := &MockResetHistoryRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
