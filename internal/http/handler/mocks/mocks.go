package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/intake"
	"burialdesk/internal/model"
	"burialdesk/internal/report"
	"burialdesk/internal/storage"
)

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockRemoteAPI struct {
	mock.Mock
}

func (m *MockRemoteAPI) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	args := m.Called(ctx, creds)
	if r, ok := args.Get(0).(*model.LoginResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) CurrentUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error) {
	args := m.Called(ctx, q)
	if p, ok := args.Get(0).(*model.RecordPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) GetRecord(ctx context.Context, id string) (*model.Record, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*model.Record); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) DeleteRecord(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemoteAPI) BulkDeleteRecords(ctx context.Context, ids []string) (string, error) {
	args := m.Called(ctx, ids)
	return args.String(0), args.Error(1)
}

func (m *MockRemoteAPI) ListPublicRecords(ctx context.Context, status string, page, limit int) (*model.PublicRecordPage, error) {
	args := m.Called(ctx, status, page, limit)
	if p, ok := args.Get(0).(*model.PublicRecordPage); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) VerifyPublicRecord(ctx context.Context, id string, v apiclient.Verification) (string, error) {
	args := m.Called(ctx, id, v)
	return args.String(0), args.Error(1)
}

func (m *MockRemoteAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if u, ok := args.Get(0).([]model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) RegisterUser(ctx context.Context, u model.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRemoteAPI) UpdateUser(ctx context.Context, id string, u model.User) error {
	args := m.Called(ctx, id, u)
	return args.Error(0)
}

func (m *MockRemoteAPI) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRemoteAPI) ListLocations(ctx context.Context) ([]model.Location, error) {
	args := m.Called(ctx)
	if l, ok := args.Get(0).([]model.Location); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRemoteAPI) CreateLocation(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockRemoteAPI) DeleteLocation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockIntakeController struct {
	mock.Mock
}

func (m *MockIntakeController) View() intake.View {
	args := m.Called()
	return args.Get(0).(intake.View)
}

func (m *MockIntakeController) OpenNew(ctx context.Context) intake.View {
	args := m.Called(ctx)
	return args.Get(0).(intake.View)
}

func (m *MockIntakeController) OpenEdit(ctx context.Context, id string) (intake.View, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(intake.View), args.Error(1)
}

func (m *MockIntakeController) Apply(values map[string]string) error {
	args := m.Called(values)
	return args.Error(0)
}

func (m *MockIntakeController) Reset(ctx context.Context) (intake.View, error) {
	args := m.Called(ctx)
	return args.Get(0).(intake.View), args.Error(1)
}

func (m *MockIntakeController) Submit(ctx context.Context, files []storage.File) (*intake.Result, error) {
	args := m.Called(ctx, files)
	if r, ok := args.Get(0).(*intake.Result); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) Load(ctx context.Context) (model.Form, bool) {
	args := m.Called(ctx)
	return args.Get(0).(model.Form), args.Bool(1)
}

func (m *MockDraftStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockNumberPreviewer struct {
	mock.Mock
}

func (m *MockNumberPreviewer) PreviewNow(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Overview(ctx context.Context) (*model.Overview, error) {
	args := m.Called(ctx)
	if o, ok := args.Get(0).(*model.Overview); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReporter) Build(ctx context.Context, kind report.Kind, f report.Filter, dateFormat string) (*report.Report, error) {
	args := m.Called(ctx, kind, f, dateFormat)
	if r, ok := args.Get(0).(*report.Report); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Reload(ctx context.Context) model.Settings {
	args := m.Called(ctx)
	return args.Get(0).(model.Settings)
}

func (m *MockSettingsService) Current() model.Settings {
	args := m.Called()
	return args.Get(0).(model.Settings)
}

func (m *MockSettingsService) Update(ctx context.Context, s model.Settings) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) SetToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
