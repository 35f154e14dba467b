package mocks

import (
	context "context"
	time "time"

	persistence "github.com/claimsy/karma/internal/domain/port/persistence"
	mock "github.com/stretchr/testify/mock"
)

// MockLocker is a mock type for the Locker type
type MockLocker struct {
	mock.Mock
}

// Obtain provides a mock function with given fields: ctx, key, ttl
func (_m *MockLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (persistence.Lock, error) {
	ret := _m.Called(ctx, key, ttl)

	var r0 persistence.Lock
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(persistence.Lock)
	}
	return r0, ret.Error(1)
}

// NewMockLocker creates a new instance of MockLocker. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLocker(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLocker {
	m := &MockLocker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// MockLock is a mock type for the Lock type
type MockLock struct {
	mock.Mock
}

// Release provides a mock function with given fields: ctx
func (_m *MockLock) Release(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewMockLock creates a new instance of MockLock. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLock(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLock {
	m := &MockLock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
