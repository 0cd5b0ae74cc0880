package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/draft"
	"burialdesk/internal/model"
)

type MockRecordAPI struct {
	mock.Mock
}

func (m *MockRecordAPI) GetRecord(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*model.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordAPI) CreateRecord(ctx context.Context, payload map[string]any) (*model.Record, error) {
	args := m.Called(ctx, payload)
	if r, ok := args.Get(0).(*model.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRecordAPI) UpdateRecord(ctx context.Context, id string, payload map[string]any) (*model.Record, error) {
	args := m.Called(ctx, id, payload)
	if r, ok := args.Get(0).(*model.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockPreviewer struct {
	mock.Mock
}

func (m *MockPreviewer) PreviewNow(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

type MockDrafts struct {
	mock.Mock
}

func (m *MockDrafts) Load(ctx context.Context) (model.Form, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.Form), args.Bool(1)
}

func (m *MockDrafts) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDrafts) Schedule(snapshot model.Form) {
	m.Called(snapshot)
}

func (m *MockDrafts) Cancel() {
	m.Called()
}

func (m *MockDrafts) Status() draft.SaveStatus {
	args := m.Called()
	return args.Get(0).(draft.SaveStatus)
}

type MockAutoSaver struct {
	mock.Mock
}

func (m *MockAutoSaver) AutoSave() bool {
	args := m.Called()
	return args.Bool(0)
}
