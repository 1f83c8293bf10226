package mocks

import (
	"context"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// Locator is a mock type for the locator.Provider type.
type Locator struct {
	mock.Mock
}

// Reverse provides a mock function with given fields: ctx, position.
func (_m *Locator) Reverse(ctx context.Context, position models.Coordinate) (string, error) {
	ret := _m.Called(ctx, position)

	if len(ret) == 0 {
		panic("no return value specified for Reverse")
	}

	var r0 string
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinate) (string, error)); ok {
		return rf(ctx, position)
	}
	if rf, ok := ret.Get(0).(func(context.Context, models.Coordinate) string); ok {
		r0 = rf(ctx, position)
	} else {
		r0 = ret.Get(0).(string)
	}

	if rf, ok := ret.Get(1).(func(context.Context, models.Coordinate) error); ok {
		r1 = rf(ctx, position)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewLocator creates a new instance of Locator. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewLocator(t interface {
	mock.TestingT
	Cleanup(func())
}) *Locator {
	m := &Locator{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
