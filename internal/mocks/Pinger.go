package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Pinger is a mock type for the model.Pinger type.
type Pinger struct {
	mock.Mock
}

func (_m *Pinger) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// NewPinger creates a new instance of Pinger. It also registers a cleanup
// function to assert the mocks expectations.
func NewPinger(t interface {
	mock.TestingT
	Cleanup(func())
}) *Pinger {
	m := &Pinger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
