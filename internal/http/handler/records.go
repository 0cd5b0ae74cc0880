package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
	"burialdesk/internal/report"
)

const defaultPageSize = 10

type bulkDeleteRequest struct {
	RecordIDs []string `json:"recordIds"`
}

var (
	errInvalidPage  = errors.New("invalid page")
	errInvalidLimit = errors.New("invalid limit")
)

// parsePaging reads page and limit, defaulting to the first page of ten.
func parsePaging(c *fiber.Ctx) (page, limit int, err error) {
	page, err = strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, errInvalidPage
	}
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit < 1 {
		return 0, 0, errInvalidLimit
	}
	return page, limit, nil
}

func writePagingError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidPage) {
		return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", err.Error())
	}
	return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", err.Error())
}

// parseDay reads a YYYY-MM-DD query value. endOfDay moves it to the last instant of that day.
func parseDay(v string, endOfDay bool) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, v, time.Local)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

// ListRecords lists records with filters. Data entry operators only see
// records they created.
//
// @Summary List records
// @Tags records
// @Produce json
// @Param search query string false "Name or record number"
// @Param burialLocation query string false "Burial location"
// @Param status query string false "Verification status"
// @Param gender query string false "Gender"
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} model.RecordPage
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/records [get]
func ListRecords(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := parsePaging(c)
		if err != nil {
			return writePagingError(c, err)
		}
		start, err := parseDay(c.Query("startDate"), false)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid startDate")
		}
		end, err := parseDay(c.Query("endDate"), true)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid endDate")
		}

		q := apiclient.RecordQuery{
			Search:         strings.TrimSpace(c.Query("search")),
			BurialLocation: c.Query("burialLocation"),
			Status:         c.Query("status"),
			Gender:         c.Query("gender"),
			StartDate:      start,
			EndDate:        end,
			Page:           page,
			Limit:          limit,
		}

		u, err := api.CurrentUser(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		if u.Role == model.RoleDataEntry {
			q.CreatedBy = u.ID
		}

		res, err := api.ListRecords(c.UserContext(), q)
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(res)
	}
}

// GetRecord returns one record.
//
// @Summary Get record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} model.Record
// @Failure 404 {object} errorPayload
// @Router /api/records/{id} [get]
func GetRecord(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := api.GetRecord(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(rec)
	}
}

// DeleteRecord deletes one record.
//
// @Summary Delete record
// @Tags records
// @Param id path string true "Record ID"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /api/records/{id} [delete]
func DeleteRecord(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := api.DeleteRecord(c.UserContext(), c.Params("id")); err != nil {
			return writeUpstreamError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// BulkDeleteRecords deletes the selected records.
//
// @Summary Delete several records
// @Tags records
// @Accept json
// @Produce json
// @Param ids body bulkDeleteRequest true "Record IDs"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Router /api/records [delete]
func BulkDeleteRecords(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req bulkDeleteRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if len(req.RecordIDs) == 0 {
			return writeError(c, fiber.StatusBadRequest, "IDS_REQUIRED", "select at least one record")
		}
		msg, err := api.BulkDeleteRecords(c.UserContext(), req.RecordIDs)
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(messagePayload{Message: msg})
	}
}

// RecordSummary downloads a plain-text sheet for one record.
//
// @Summary Record summary
// @Tags records
// @Produce plain
// @Param id path string true "Record ID"
// @Success 200 {string} string
// @Failure 404 {object} errorPayload
// @Router /api/records/{id}/summary [get]
func RecordSummary(api RemoteAPI, settings SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec, err := api.GetRecord(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeUpstreamError(c, err)
		}
		c.Attachment(rec.RecordNumber + ".txt")
		c.Type("txt", "utf-8")
		return c.SendString(report.Summary(*rec, settings.Current().DateFormat))
	}
}
