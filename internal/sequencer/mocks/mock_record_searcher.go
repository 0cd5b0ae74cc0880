package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
)

type MockRecordSearcher struct {
	mock.Mock
}

func (m *MockRecordSearcher) ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error) {
	args := m.Called(ctx, q)
	if p, ok := args.Get(0).(*model.RecordPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
