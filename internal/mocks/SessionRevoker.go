package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// SessionRevoker is a mock type for the model.SessionRevoker type.
type SessionRevoker struct {
	mock.Mock
}

func (_m *SessionRevoker) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ret := _m.Called(ctx, tokenID, until)
	return ret.Error(0)
}

func (_m *SessionRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ret := _m.Called(ctx, tokenID)
	return ret.Bool(0), ret.Error(1)
}

// NewSessionRevoker creates a new instance of SessionRevoker. It also
// registers a cleanup function to assert the mocks expectations.
func NewSessionRevoker(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionRevoker {
	m := &SessionRevoker{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
