package handler

import (
	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/intake"
	"burialdesk/internal/storage"
)

// filesField is the multipart field carrying attachments on submit.
const filesField = "files"

// GetIntake returns the current state of the intake form.
//
// @Summary Intake form state
// @Tags intake
// @Produce json
// @Success 200 {object} intake.View
// @Router /api/intake [get]
func GetIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(ctrl.View())
	}
}

// PatchIntake applies field changes. The body maps field names to values;
// unknown names reject the whole change.
//
// @Summary Edit intake fields
// @Tags intake
// @Accept json
// @Produce json
// @Param fields body map[string]string true "Field values"
// @Success 200 {object} intake.View
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/intake [patch]
func PatchIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		values := map[string]string{}
		if err := c.BodyParser(&values); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if err := ctrl.Apply(values); err != nil {
			return writeIntakeError(c, err)
		}
		return c.JSON(ctrl.View())
	}
}

// OpenNewIntake opens a blank form, restoring the stored draft when there is one.
//
// @Summary Start a new record
// @Tags intake
// @Produce json
// @Success 200 {object} intake.View
// @Router /api/intake/new [post]
func OpenNewIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(ctrl.OpenNew(c.UserContext()))
	}
}

// OpenEditIntake loads an existing record into the form.
//
// @Summary Edit a record
// @Tags intake
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} intake.View
// @Failure 404 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/intake/edit/{id} [post]
func OpenEditIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := ctrl.OpenEdit(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeIntakeError(c, err)
		}
		return c.JSON(view)
	}
}

// ResetIntake clears the form and the stored draft.
//
// @Summary Reset the form
// @Tags intake
// @Produce json
// @Success 200 {object} intake.View
// @Failure 409 {object} errorPayload
// @Router /api/intake/reset [post]
func ResetIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		view, err := ctrl.Reset(c.UserContext())
		if err != nil {
			return writeIntakeError(c, err)
		}
		return c.JSON(view)
	}
}

// SubmitIntake uploads the attached files and saves the record
// (multipart/form-data, field name: files).
//
// @Summary Submit the form
// @Tags intake
// @Accept multipart/form-data
// @Produce json
// @Param files formData file false "Supporting documents"
// @Success 201 {object} intake.Result
// @Success 200 {object} intake.Result
// @Failure 409 {object} errorPayload
// @Failure 422 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/intake/submit [post]
func SubmitIntake(ctrl IntakeController) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var files []storage.File
		if form, err := c.MultipartForm(); err == nil {
			for _, fh := range form.File[filesField] {
				f, err := fh.Open()
				if err != nil {
					return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
				}
				defer f.Close()
				files = append(files, storage.File{
					Name:        fh.Filename,
					ContentType: fh.Header.Get("Content-Type"),
					Size:        fh.Size,
					Content:     f,
				})
			}
		}

		res, err := ctrl.Submit(c.UserContext(), files)
		if err != nil {
			return writeIntakeError(c, err)
		}
		status := fiber.StatusOK
		if res.Mode == intake.ModeNew {
			status = fiber.StatusCreated
		}
		return c.Status(status).JSON(res)
	}
}

// PreviewNumber returns the record number the next new record is expected to get.
//
// @Summary Preview next record number
// @Tags intake
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/intake/preview-number [get]
func PreviewNumber(numbers NumberPreviewer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"recordNumber": numbers.PreviewNow(c.UserContext())})
	}
}

// GetDraft returns the stored draft.
//
// @Summary Stored draft
// @Tags intake
// @Produce json
// @Success 200 {object} model.Form
// @Failure 404 {object} errorPayload
// @Router /api/intake/draft [get]
func GetDraft(drafts DraftStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, ok := drafts.Load(c.UserContext())
		if !ok {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "no draft stored")
		}
		return c.JSON(form)
	}
}

// ClearDraft discards the stored draft.
//
// @Summary Discard the draft
// @Tags intake
// @Success 204
// @Router /api/intake/draft [delete]
func ClearDraft(drafts DraftStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := drafts.Clear(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
