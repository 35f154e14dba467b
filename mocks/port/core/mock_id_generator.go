package mocks

import (
	mock "github.com/stretchr/testify/mock"
)

// MockIDGenerator is a mock type for the IDGenerator type
type MockIDGenerator struct {
	mock.Mock
}

// NextID provides a mock function with no fields
func (_m *MockIDGenerator) NextID() int64 {
	ret := _m.Called()
	if rf, ok := ret.Get(0).(func() int64); ok {
		return rf()
	}
	return ret.Get(0).(int64)
}

// NewMockIDGenerator creates a new instance of MockIDGenerator. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockIDGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockIDGenerator {
	m := &MockIDGenerator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
