package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/http/handler/mocks"
	"burialdesk/internal/intake"
	"burialdesk/internal/model"
)

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	state := new(mocks.MockPinger)
	app := fiber.New()
	app.Get("/health", HealthCheck(state))

	t.Run("healthy", func(t *testing.T) {
		state.On("Ping", mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		state.On("Ping", mock.Anything).Return(errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})

	state.AssertExpectations(t)
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestWriteUpstreamError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"unauthorized", &apiclient.APIError{StatusCode: 401}, http.StatusUnauthorized, "UNAUTHORIZED", "login required"},
		{"forbidden", &apiclient.APIError{StatusCode: 403, Message: "Admins only"}, http.StatusForbidden, "FORBIDDEN", "Admins only"},
		{"not found", fmt.Errorf("get: %w", &apiclient.APIError{StatusCode: 404}), http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{"bad request", &apiclient.APIError{StatusCode: 400, Message: "Record number exists"}, http.StatusBadRequest, "REJECTED", "Record number exists"},
		{"server error", &apiclient.APIError{StatusCode: 500}, http.StatusBadGateway, "UPSTREAM_ERROR", "records service error"},
		{"transport", errors.New("dial tcp: refused"), http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "records service unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeUpstreamError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeError(t, resp)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMsg, body.Error.Message)
		})
	}
}

func TestWriteIntakeError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &intake.ValidationError{Field: "age", Message: intake.MsgInvalidAge}, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{"in progress", intake.ErrSubmitInProgress, http.StatusConflict, "SUBMIT_IN_PROGRESS"},
		{"not open", intake.ErrNotOpen, http.StatusConflict, "FORM_NOT_OPEN"},
		{"unknown field", fmt.Errorf("%w: shoeSize", model.ErrUnknownField), http.StatusBadRequest, "UNKNOWN_FIELD"},
		{"submit", &intake.SubmitError{Message: intake.MsgSaveFailed, Err: errors.New("boom")}, http.StatusBadGateway, "SUBMIT_FAILED"},
		{"upstream", &apiclient.APIError{StatusCode: 404}, http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeIntakeError(c, tt.err) })

			resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, decodeError(t, resp).Error.Code)
		})
	}
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	RegisterRoutes(app, Deps{
		State:    new(mocks.MockPinger),
		API:      new(mocks.MockRemoteAPI),
		Intake:   new(mocks.MockIntakeController),
		Drafts:   new(mocks.MockDraftStore),
		Numbers:  new(mocks.MockNumberPreviewer),
		Reports:  new(mocks.MockReporter),
		Settings: new(mocks.MockSettingsService),
		Session:  new(mocks.MockSessionStore),
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("unauthorized", func(t *testing.T) {
		app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
		app.Get("/api/records", func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusUnauthorized, "login required")
		})

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/api/records", nil))

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "UNAUTHORIZED", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})
}
