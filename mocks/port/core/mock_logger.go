package mocks

import (
	core "github.com/claimsy/karma/internal/domain/port/core"
	mock "github.com/stretchr/testify/mock"
)

// MockLogger is a mock type for the Logger type
type MockLogger struct {
	mock.Mock
}

// SetLevel provides a mock function with given fields: level
func (_m *MockLogger) SetLevel(level core.LogLevel) {
	_m.Called(level)
}

// GetLevel provides a mock function with no fields
func (_m *MockLogger) GetLevel() core.LogLevel {
	ret := _m.Called()
	return ret.Get(0).(core.LogLevel)
}

// With provides a mock function with given fields: fields
func (_m *MockLogger) With(fields map[string]any) core.Logger {
	ret := _m.Called(fields)
	if rf, ok := ret.Get(0).(func(map[string]any) core.Logger); ok {
		return rf(fields)
	}
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(core.Logger)
}

// Debug provides a mock function with given fields: message, fields
func (_m *MockLogger) Debug(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Info provides a mock function with given fields: message, fields
func (_m *MockLogger) Info(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Warn provides a mock function with given fields: message, fields
func (_m *MockLogger) Warn(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Error provides a mock function with given fields: message, fields
func (_m *MockLogger) Error(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Flush provides a mock function with no fields
func (_m *MockLogger) Flush() error {
	ret := _m.Called()
	return ret.Error(0)
}

// AllowAll accepts any number of log calls at every level
func (_m *MockLogger) AllowAll() *MockLogger {
	_m.On("Debug", mock.Anything, mock.Anything).Maybe()
	_m.On("Info", mock.Anything, mock.Anything).Maybe()
	_m.On("Warn", mock.Anything, mock.Anything).Maybe()
	_m.On("Error", mock.Anything, mock.Anything).Maybe()
	_m.On("With", mock.Anything).Return(_m).Maybe()
	return _m
}

// NewMockLogger creates a new instance of MockLogger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
