package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/model"
)

const minPasswordLength = 6

func validRole(role string) bool {
	return role == model.RoleAdmin || role == model.RoleDataEntry
}

// ListUsers lists operator accounts.
//
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errorPayload
// @Router /api/users [get]
func ListUsers(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := api.ListUsers(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		if users == nil {
			users = []model.User{}
		}
		return c.JSON(users)
	}
}

// CreateUser registers a new operator. Role defaults to data_entry.
//
// @Summary Create user
// @Tags users
// @Accept json
// @Param user body model.User true "New account"
// @Success 201
// @Failure 400 {object} errorPayload
// @Router /api/users [post]
func CreateUser(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var u model.User
		if err := c.BodyParser(&u); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		u.Username = strings.TrimSpace(u.Username)
		u.Email = strings.TrimSpace(u.Email)
		if u.Role == "" {
			u.Role = model.RoleDataEntry
		}
		switch {
		case u.Username == "" || u.Email == "":
			return writeError(c, fiber.StatusBadRequest, "FIELDS_REQUIRED", "username and email are required")
		case len(u.Password) < minPasswordLength:
			return writeError(c, fiber.StatusBadRequest, "WEAK_PASSWORD", "password must be at least 6 characters")
		case !validRole(u.Role):
			return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "role must be admin or data_entry")
		}

		if err := api.RegisterUser(c.UserContext(), u); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.SendStatus(fiber.StatusCreated)
	}
}

// UpdateUser changes an operator's profile, role or active flag.
//
// @Summary Update user
// @Tags users
// @Accept json
// @Param id path string true "User ID"
// @Param user body model.User true "Account fields"
// @Success 204
// @Failure 400 {object} errorPayload
// @Router /api/users/{id} [put]
func UpdateUser(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var u model.User
		if err := c.BodyParser(&u); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if u.Role != "" && !validRole(u.Role) {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ROLE", "role must be admin or data_entry")
		}
		u.Password = ""
		if err := api.UpdateUser(c.UserContext(), c.Params("id"), u); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteUser removes an operator account.
//
// @Summary Delete user
// @Tags users
// @Param id path string true "User ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/users/{id} [delete]
func DeleteUser(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := api.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
