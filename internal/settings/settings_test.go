package settings_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"burialdesk/internal/model"
	"burialdesk/internal/settings"
	"burialdesk/internal/settings/mocks"
)

type token string

func (t token) Token(context.Context) (string, error) { return string(t), nil }

func TestService_Reload(t *testing.T) {
	ctx := context.Background()
	remote := model.Settings{AutoSave: false, Theme: "dark", DateFormat: settings.FormatISO}

	tests := []struct {
		name       string
		token      token
		setupMocks func(m *mocks.MockSettingsAPI)
		want       model.Settings
	}{
		{
			name:  "logged in",
			token: "tok",
			setupMocks: func(m *mocks.MockSettingsAPI) {
				m.On("GetSettings", ctx).Return(&remote, nil)
			},
			want: remote,
		},
		{
			name:       "logged out keeps defaults",
			token:      "",
			setupMocks: func(m *mocks.MockSettingsAPI) {},
			want:       model.DefaultSettings(),
		},
		{
			name:  "api failure keeps defaults",
			token: "tok",
			setupMocks: func(m *mocks.MockSettingsAPI) {
				m.On("GetSettings", ctx).Return(nil, errors.New("502"))
			},
			want: model.DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mocks.MockSettingsAPI)
			tt.setupMocks(m)
			svc := settings.NewService(m, tt.token, zap.NewNop())

			assert.Equal(t, tt.want, svc.Reload(ctx))
			assert.Equal(t, tt.want, svc.Current())
			assert.Equal(t, tt.want.AutoSave, svc.AutoSave())
			m.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()
	next := model.DefaultSettings()
	next.AutoSave = false

	m := new(mocks.MockSettingsAPI)
	m.On("UpdateSettings", ctx, next).Return("Settings updated successfully", nil).Once()
	svc := settings.NewService(m, token("tok"), zap.NewNop())

	msg, err := svc.Update(ctx, next)
	require.NoError(t, err)
	assert.Equal(t, "Settings updated successfully", msg)
	assert.False(t, svc.AutoSave())

	m.On("UpdateSettings", ctx, model.DefaultSettings()).Return("", errors.New("boom")).Once()
	_, err = svc.Update(ctx, model.DefaultSettings())
	assert.ErrorContains(t, err, "update settings: boom")
	assert.False(t, svc.AutoSave())
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 3, 7, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "07/03/2025", settings.FormatDate(d, settings.FormatDayFirst))
	assert.Equal(t, "03/07/2025", settings.FormatDate(d, settings.FormatMonthFirst))
	assert.Equal(t, "2025-03-07", settings.FormatDate(d, settings.FormatISO))
	assert.Equal(t, "07/03/2025", settings.FormatDate(d, "weird"))
	assert.Equal(t, "", settings.FormatDate(time.Time{}, settings.FormatISO))
}

func TestParseAPIDate(t *testing.T) {
	got, err := settings.ParseAPIDate("2025-03-07T00:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC), got)

	got, err = settings.ParseAPIDate("2025-03-07")
	require.NoError(t, err)
	assert.Equal(t, 7, got.Day())

	got, err = settings.ParseAPIDate("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = settings.ParseAPIDate("yesterday")
	assert.Error(t, err)
}
