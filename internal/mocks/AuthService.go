package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/filedrop/internal/model"
)

// AuthService is a mock type for the handler.AuthService type.
type AuthService struct {
	mock.Mock
}

func (_m *AuthService) Signup(ctx context.Context, params model.SignupParams) (model.User, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *AuthService) Login(ctx context.Context, identity, password string) (model.User, error) {
	ret := _m.Called(ctx, identity, password)
	return ret.Get(0).(model.User), ret.Error(1)
}

func (_m *AuthService) Resolve(ctx context.Context, userID uuid.UUID) (model.User, error) {
	ret := _m.Called(ctx, userID)
	return ret.Get(0).(model.User), ret.Error(1)
}

// NewAuthService creates a new instance of AuthService. It also registers a
// cleanup function to assert the mocks expectations.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
