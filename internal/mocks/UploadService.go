package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/filedrop/internal/model"
)

// UploadService is a mock type for the handler.UploadService type.
type UploadService struct {
	mock.Mock
}

func (_m *UploadService) Upload(ctx context.Context, params model.UploadParams) (model.Upload, error) {
	ret := _m.Called(ctx, params)
	return ret.Get(0).(model.Upload), ret.Error(1)
}

func (_m *UploadService) List(ctx context.Context, userID uuid.UUID) ([]model.Upload, error) {
	ret := _m.Called(ctx, userID)

	var r0 []model.Upload
	if v := ret.Get(0); v != nil {
		r0 = v.([]model.Upload)
	}
	return r0, ret.Error(1)
}

func (_m *UploadService) Open(ctx context.Context, userID, uploadID uuid.UUID) (model.Upload, io.ReadCloser, error) {
	ret := _m.Called(ctx, userID, uploadID)

	var r1 io.ReadCloser
	if v := ret.Get(1); v != nil {
		r1 = v.(io.ReadCloser)
	}
	return ret.Get(0).(model.Upload), r1, ret.Error(2)
}

// NewUploadService creates a new instance of UploadService. It also
// registers a cleanup function to assert the mocks expectations.
func NewUploadService(t interface {
	mock.TestingT
	Cleanup(func())
}) *UploadService {
	m := &UploadService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
