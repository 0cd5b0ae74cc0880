package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/model"
)

type loginResponse struct {
	User     model.User     `json:"user"`
	Settings model.Settings `json:"settings"`
}

// Login exchanges credentials for an API token and keeps it for later calls.
//
// @Summary Log in
// @Tags session
// @Accept json
// @Produce json
// @Param credentials body model.Credentials true "Email and password"
// @Success 200 {object} loginResponse
// @Failure 400 {object} errorPayload
// @Failure 401 {object} errorPayload
// @Router /api/session [post]
func Login(api RemoteAPI, session SessionStore, settings SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var creds model.Credentials
		if err := c.BodyParser(&creds); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		creds.Email = strings.TrimSpace(creds.Email)
		if creds.Email == "" || creds.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "CREDENTIALS_REQUIRED", "email and password are required")
		}

		res, err := api.Login(c.UserContext(), creds)
		if err != nil {
			return writeUpstreamError(c, err)
		}
		if err := session.SetToken(c.UserContext(), res.Token); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		prefs := settings.Reload(c.UserContext())
		return c.JSON(loginResponse{User: res.User, Settings: prefs})
	}
}

// CurrentUser returns the account behind the stored token.
//
// @Summary Current user
// @Tags session
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errorPayload
// @Router /api/session [get]
func CurrentUser(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u, err := api.CurrentUser(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(u)
	}
}

// Logout forgets the stored token.
//
// @Summary Log out
// @Tags session
// @Success 204
// @Router /api/session [delete]
func Logout(session SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := session.Clear(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
