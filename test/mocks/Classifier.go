package mocks

import (
	"context"

	"github.com/UnknownOlympus/seawatch/internal/classifier"
	"github.com/stretchr/testify/mock"
)

// Classifier is a mock type for the Classifier type.
type Classifier struct {
	mock.Mock
}

// Predict provides a mock function with given fields: ctx, features.
func (_m *Classifier) Predict(ctx context.Context, features classifier.Features) (int, error) {
	ret := _m.Called(ctx, features)

	if len(ret) == 0 {
		panic("no return value specified for Predict")
	}

	var r0 int
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, classifier.Features) (int, error)); ok {
		return rf(ctx, features)
	}
	if rf, ok := ret.Get(0).(func(context.Context, classifier.Features) int); ok {
		r0 = rf(ctx, features)
	} else {
		r0 = ret.Get(0).(int)
	}

	if rf, ok := ret.Get(1).(func(context.Context, classifier.Features) error); ok {
		r1 = rf(ctx, features)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewClassifier creates a new instance of Classifier. It also registers a testing interface on the mock
// and a cleanup function to assert the mocks expectations.
func NewClassifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *Classifier {
	m := &Classifier{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
