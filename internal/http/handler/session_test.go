package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/http/handler/mocks"
	"burialdesk/internal/model"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLogin(t *testing.T) {
	creds := model.Credentials{Email: "clerk@example.com", Password: "secret"}

	tests := []struct {
		name       string
		body       string
		setupMocks func(api *mocks.MockRemoteAPI, session *mocks.MockSessionStore, settings *mocks.MockSettingsService)
		wantStatus int
		wantCode   string
	}{
		{
			name: "success",
			body: `{"email":" clerk@example.com ","password":"secret"}`,
			setupMocks: func(api *mocks.MockRemoteAPI, session *mocks.MockSessionStore, settings *mocks.MockSettingsService) {
				api.On("Login", mock.Anything, creds).Return(&model.LoginResult{
					Token: "tok",
					User:  model.User{ID: "u1", Role: model.RoleAdmin},
				}, nil)
				session.On("SetToken", mock.Anything, "tok").Return(nil)
				settings.On("Reload", mock.Anything).Return(model.DefaultSettings())
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing password",
			body:       `{"email":"clerk@example.com"}`,
			setupMocks: func(*mocks.MockRemoteAPI, *mocks.MockSessionStore, *mocks.MockSettingsService) {},
			wantStatus: http.StatusBadRequest,
			wantCode:   "CREDENTIALS_REQUIRED",
		},
		{
			name: "bad credentials",
			body: `{"email":"clerk@example.com","password":"secret"}`,
			setupMocks: func(api *mocks.MockRemoteAPI, _ *mocks.MockSessionStore, _ *mocks.MockSettingsService) {
				api.On("Login", mock.Anything, creds).Return(nil, &apiclient.APIError{StatusCode: 400, Message: "Invalid credentials"})
			},
			wantStatus: http.StatusBadRequest,
			wantCode:   "REJECTED",
		},
		{
			name: "token not stored",
			body: `{"email":"clerk@example.com","password":"secret"}`,
			setupMocks: func(api *mocks.MockRemoteAPI, session *mocks.MockSessionStore, _ *mocks.MockSettingsService) {
				api.On("Login", mock.Anything, creds).Return(&model.LoginResult{Token: "tok"}, nil)
				session.On("SetToken", mock.Anything, "tok").Return(errors.New("disk full"))
			},
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(mocks.MockRemoteAPI)
			session := new(mocks.MockSessionStore)
			settings := new(mocks.MockSettingsService)
			tt.setupMocks(api, session, settings)

			app := fiber.New()
			app.Post("/api/session", Login(api, session, settings))

			resp, _ := app.Test(jsonRequest(http.MethodPost, "/api/session", tt.body))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
			} else {
				var body loginResponse
				json.NewDecoder(resp.Body).Decode(&body)
				assert.Equal(t, "u1", body.User.ID)
				assert.Equal(t, "DD/MM/YYYY", body.Settings.DateFormat)
			}
			api.AssertExpectations(t)
			session.AssertExpectations(t)
			settings.AssertExpectations(t)
		})
	}
}

func TestCurrentUser(t *testing.T) {
	api := new(mocks.MockRemoteAPI)
	app := fiber.New()
	app.Get("/api/session", CurrentUser(api))

	t.Run("logged in", func(t *testing.T) {
		api.On("CurrentUser", mock.Anything).Return(&model.User{ID: "u1", Username: "clerk"}, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/session", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var u model.User
		json.NewDecoder(resp.Body).Decode(&u)
		assert.Equal(t, "clerk", u.Username)
	})

	t.Run("no session", func(t *testing.T) {
		api.On("CurrentUser", mock.Anything).Return(nil, &apiclient.APIError{StatusCode: 401}).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/session", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	api.AssertExpectations(t)
}

func TestLogout(t *testing.T) {
	session := new(mocks.MockSessionStore)
	session.On("Clear", mock.Anything).Return(nil).Once()

	app := fiber.New()
	app.Delete("/api/session", Logout(session))

	resp, _ := app.Test(httptest.NewRequest(http.MethodDelete, "/api/session", nil))

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	session.AssertExpectations(t)
}
