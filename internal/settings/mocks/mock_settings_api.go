package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/model"
)

type MockSettingsAPI struct {
	mock.Mock
}

func (m *MockSettingsAPI) GetSettings(ctx context.Context) (*model.Settings, error) {
	args := m.Called(ctx)
	if s, ok := args.Get(0).(*model.Settings); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSettingsAPI) UpdateSettings(ctx context.Context, s model.Settings) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}
