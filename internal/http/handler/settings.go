package handler

import (
	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/settings"
)

var dateFormats = map[string]bool{
	settings.FormatDayFirst:   true,
	settings.FormatMonthFirst: true,
	settings.FormatISO:        true,
}

var themes = map[string]bool{"light": true, "dark": true, "auto": true}

// GetSettings returns the operator preferences, refreshed from the API.
//
// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} model.Settings
// @Router /api/settings [get]
func GetSettings(svc SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.Reload(c.UserContext()))
	}
}

// UpdateSettings stores new preferences.
//
// @Summary Update settings
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body model.Settings true "Preferences"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Router /api/settings [put]
func UpdateSettings(svc SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		next := svc.Current()
		if err := c.BodyParser(&next); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if !dateFormats[next.DateFormat] {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE_FORMAT", "unsupported date format")
		}
		if !themes[next.Theme] {
			return writeError(c, fiber.StatusBadRequest, "INVALID_THEME", "unsupported theme")
		}

		msg, err := svc.Update(c.UserContext(), next)
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(messagePayload{Message: orMessage(msg, "Settings updated")})
	}
}
