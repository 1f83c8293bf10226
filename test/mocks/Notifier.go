package mocks

import (
	"context"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// Notifier is a mock type for the Notifier type.
type Notifier struct {
	mock.Mock
}

// Notify provides a mock function with given fields: ctx, event.
func (_m *Notifier) Notify(ctx context.Context, event models.AlertEvent) error {
	ret := _m.Called(ctx, event)

	if len(ret) == 0 {
		panic("no return value specified for Notify")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, models.AlertEvent) error); ok {
		r0 = rf(ctx, event)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewNotifier creates a new instance of Notifier. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Notifier {
	m := &Notifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
