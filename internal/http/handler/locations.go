package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/model"
)

type locationRequest struct {
	Name string `json:"name"`
}

type locationView struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Default bool   `json:"default"`
}

// mergeLocations lists the default locations first, then stored ones not
// already named, in API order.
func mergeLocations(stored []model.Location) []locationView {
	out := make([]locationView, 0, len(model.DefaultLocations)+len(stored))
	seen := map[string]int{}
	for _, name := range model.DefaultLocations {
		seen[name] = len(out)
		out = append(out, locationView{Name: name, Default: true})
	}
	for _, l := range stored {
		if i, ok := seen[l.Name]; ok {
			if out[i].ID == "" {
				out[i].ID = l.ID
			}
			continue
		}
		seen[l.Name] = len(out)
		out = append(out, locationView{ID: l.ID, Name: l.Name})
	}
	return out
}

// ListLocations returns the default and stored burial locations.
//
// @Summary List burial locations
// @Tags locations
// @Produce json
// @Success 200 {array} locationView
// @Router /api/locations [get]
func ListLocations(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stored, err := api.ListLocations(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(mergeLocations(stored))
	}
}

// CreateLocation stores a new burial location.
//
// @Summary Add burial location
// @Tags locations
// @Accept json
// @Produce json
// @Param location body locationRequest true "Location name"
// @Success 201 {object} locationRequest
// @Failure 400 {object} errorPayload
// @Router /api/locations [post]
func CreateLocation(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req locationRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "location name is required")
		}
		if err := api.CreateLocation(c.UserContext(), req.Name); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(req)
	}
}

// DeleteLocation removes a stored location. Default locations cannot be deleted.
//
// @Summary Delete burial location
// @Tags locations
// @Param id path string true "Location ID"
// @Success 204
// @Failure 400 {object} errorPayload
// @Router /api/locations/{id} [delete]
func DeleteLocation(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if model.IsDefaultLocation(id) {
			return writeError(c, fiber.StatusBadRequest, "DEFAULT_LOCATION", "cannot delete default system locations")
		}
		stored, err := api.ListLocations(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		for _, l := range stored {
			if l.ID == id && model.IsDefaultLocation(l.Name) {
				return writeError(c, fiber.StatusBadRequest, "DEFAULT_LOCATION", "cannot delete default system locations")
			}
		}
		if err := api.DeleteLocation(c.UserContext(), id); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
