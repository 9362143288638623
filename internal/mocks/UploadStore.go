package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/filedrop/internal/model"
)

// UploadStore is a mock type for the model.UploadStore type.
type UploadStore struct {
	mock.Mock
}

func (_m *UploadStore) Create(ctx context.Context, upload model.Upload) (model.Upload, error) {
	ret := _m.Called(ctx, upload)
	return ret.Get(0).(model.Upload), ret.Error(1)
}

func (_m *UploadStore) GetByID(ctx context.Context, id uuid.UUID) (model.Upload, error) {
	ret := _m.Called(ctx, id)
	return ret.Get(0).(model.Upload), ret.Error(1)
}

func (_m *UploadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Upload, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Upload
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Upload)
	}
	return r0, ret.Error(1)
}

func (_m *UploadStore) Delete(ctx context.Context, id uuid.UUID) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

// NewUploadStore creates a new instance of UploadStore. It also registers a
// cleanup function to assert the mocks expectations.
func NewUploadStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UploadStore {
	m := &UploadStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
