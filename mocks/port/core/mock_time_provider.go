package mocks

import (
	context "context"
	time "time"

	core "github.com/claimsy/karma/internal/domain/port/core"
	mock "github.com/stretchr/testify/mock"
)

// MockTimeProvider is a mock type for the TimeProvider type
type MockTimeProvider struct {
	mock.Mock
}

// Now provides a mock function with no fields
func (_m *MockTimeProvider) Now() time.Time {
	ret := _m.Called()
	if rf, ok := ret.Get(0).(func() time.Time); ok {
		return rf()
	}
	return ret.Get(0).(time.Time)
}

// Since provides a mock function with given fields: t
func (_m *MockTimeProvider) Since(t time.Time) core.Duration {
	ret := _m.Called(t)
	return ret.Get(0).(core.Duration)
}

// Until provides a mock function with given fields: t
func (_m *MockTimeProvider) Until(t time.Time) core.Duration {
	ret := _m.Called(t)
	return ret.Get(0).(core.Duration)
}

// After provides a mock function with given fields: d
func (_m *MockTimeProvider) After(d core.Duration) <-chan time.Time {
	ret := _m.Called(d)
	if rf, ok := ret.Get(0).(func(core.Duration) <-chan time.Time); ok {
		return rf(d)
	}
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(<-chan time.Time)
}

// WithTimeout provides a mock function with given fields: ctx, timeout
func (_m *MockTimeProvider) WithTimeout(ctx context.Context, timeout core.Duration) (context.Context, context.CancelFunc) {
	ret := _m.Called(ctx, timeout)
	return ret.Get(0).(context.Context), ret.Get(1).(context.CancelFunc)
}

// ParseDuration provides a mock function with given fields: s
func (_m *MockTimeProvider) ParseDuration(s string) (core.Duration, error) {
	ret := _m.Called(s)
	return ret.Get(0).(core.Duration), ret.Error(1)
}

// NewMockTimeProvider creates a new instance of MockTimeProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTimeProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTimeProvider {
	m := &MockTimeProvider{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
