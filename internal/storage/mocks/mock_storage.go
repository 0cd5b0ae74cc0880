package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/storage"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, f storage.File) (string, error) {
	args := m.Called(ctx, f)
	if fn, ok := args.Get(0).(func(context.Context, storage.File) string); ok {
		return fn(ctx, f), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

type MockPresigner struct {
	mock.Mock
}

func (m *MockPresigner) PresignUpload(ctx context.Context, fileName, fileType, folder string) (*apiclient.PresignedUpload, error) {
	args := m.Called(ctx, fileName, fileType, folder)
	if p, ok := args.Get(0).(*apiclient.PresignedUpload); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
