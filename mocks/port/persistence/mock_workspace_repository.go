package mocks

import (
	context "context"

	entity "github.com/claimsy/karma/internal/domain/entity"
	mock "github.com/stretchr/testify/mock"
)

// MockWorkspaceRepository is a mock type for the WorkspaceRepository type
type MockWorkspaceRepository struct {
	mock.Mock
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockWorkspaceRepository) GetByID(ctx context.Context, id int64) (*entity.Workspace, error) {
	ret := _m.Called(ctx, id)

	var r0 *entity.Workspace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Workspace)
	}
	return r0, ret.Error(1)
}

// GetSettings provides a mock function with given fields: ctx, workspaceID
func (_m *MockWorkspaceRepository) GetSettings(ctx context.Context, workspaceID int64) (*entity.WorkspaceSettings, error) {
	ret := _m.Called(ctx, workspaceID)

	var r0 *entity.WorkspaceSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.WorkspaceSettings)
	}
	return r0, ret.Error(1)
}

// ListActive provides a mock function with given fields: ctx
func (_m *MockWorkspaceRepository) ListActive(ctx context.Context) ([]*entity.Workspace, error) {
	ret := _m.Called(ctx)

	var r0 []*entity.Workspace
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.Workspace)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, workspace, settings
func (_m *MockWorkspaceRepository) Create(ctx context.Context, workspace *entity.Workspace, settings *entity.WorkspaceSettings) error {
	ret := _m.Called(ctx, workspace, settings)
	return ret.Error(0)
}

// NewMockWorkspaceRepository creates a new instance of MockWorkspaceRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockWorkspaceRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkspaceRepository {
	m := &MockWorkspaceRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
