package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
)

type MockSource struct {
	mock.Mock
}

func (m *MockSource) Overview(ctx context.Context) (*model.Overview, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).(*model.Overview); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSource) ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error) {
	args := m.Called(ctx, q)
	if p, ok := args.Get(0).(*model.RecordPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
