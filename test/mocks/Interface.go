package mocks

import (
	"context"

	"github.com/UnknownOlympus/seawatch/internal/models"
	"github.com/stretchr/testify/mock"
)

// Interface is a mock type for the repository.Interface type.
type Interface struct {
	mock.Mock
}

// InsertAlert provides a mock function with given fields: ctx, record.
func (_m *Interface) InsertAlert(ctx context.Context, record models.AlertRecord) error {
	ret := _m.Called(ctx, record)

	if len(ret) == 0 {
		panic("no return value specified for InsertAlert")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, models.AlertRecord) error); ok {
		r0 = rf(ctx, record)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// FetchRecentAlerts provides a mock function with given fields: ctx, limit.
func (_m *Interface) FetchRecentAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	ret := _m.Called(ctx, limit)

	if len(ret) == 0 {
		panic("no return value specified for FetchRecentAlerts")
	}

	var r0 []models.AlertRecord
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) ([]models.AlertRecord, error)); ok {
		return rf(ctx, limit)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) []models.AlertRecord); ok {
		r0 = rf(ctx, limit)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.AlertRecord)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, limit)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewInterface creates a new instance of Interface. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewInterface(t interface {
	mock.TestingT
	Cleanup(func())
}) *Interface {
	m := &Interface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
