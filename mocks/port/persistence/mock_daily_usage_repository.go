package mocks

import (
	context "context"
	time "time"

	mock "github.com/stretchr/testify/mock"
)

// MockDailyUsageRepository is a mock type for the DailyUsageRepository type
type MockDailyUsageRepository struct {
	mock.Mock
}

// GetAmountSent provides a mock function with given fields: ctx, profileID, day
func (_m *MockDailyUsageRepository) GetAmountSent(ctx context.Context, profileID int64, day time.Time) (int64, error) {
	ret := _m.Called(ctx, profileID, day)
	return ret.Get(0).(int64), ret.Error(1)
}

// Increment provides a mock function with given fields: ctx, profileID, day, amount
func (_m *MockDailyUsageRepository) Increment(ctx context.Context, profileID int64, day time.Time, amount int64) error {
	ret := _m.Called(ctx, profileID, day, amount)
	return ret.Error(0)
}

// NewMockDailyUsageRepository creates a new instance of MockDailyUsageRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockDailyUsageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDailyUsageRepository {
	m := &MockDailyUsageRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
