package handler

import (
	"bytes"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/report"
)

// ReportOverview returns the dashboard statistics.
//
// @Summary Overview statistics
// @Tags reports
// @Produce json
// @Success 200 {object} model.Overview
// @Failure 502 {object} errorPayload
// @Router /api/reports/overview [get]
func ReportOverview(reports Reporter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		o, err := reports.Overview(c.UserContext())
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(o)
	}
}

// ExportReport downloads a spreadsheet of the filtered records.
//
// @Summary Export report
// @Tags reports
// @Produce octet-stream
// @Param type query string false "summary or detailed" default(detailed)
// @Param format query string false "xlsx or csv" default(xlsx)
// @Param range query string false "all, last7days, last30days, last90days, thisyear" default(all)
// @Param gender query string false "Gender"
// @Param burialLocation query string false "Burial location"
// @Success 200 {file} file
// @Failure 400 {object} errorPayload
// @Failure 502 {object} errorPayload
// @Router /api/reports/export [get]
func ExportReport(reports Reporter, settings SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		kind, err := report.ParseKind(c.Query("type"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_TYPE", err.Error())
		}
		rng, err := report.ParseRange(c.Query("range"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RANGE", err.Error())
		}
		format := strings.ToLower(c.Query("format", report.FormatXLSX))
		if format != report.FormatXLSX && format != report.FormatCSV {
			return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", "format must be xlsx or csv")
		}

		filter := report.Filter{
			Range:          rng,
			Gender:         c.Query("gender"),
			BurialLocation: c.Query("burialLocation"),
		}
		rep, err := reports.Build(c.UserContext(), kind, filter, settings.Current().DateFormat)
		if err != nil {
			return writeUpstreamError(c, err)
		}

		var buf bytes.Buffer
		if err := rep.Write(&buf, format); err != nil {
			if errors.Is(err, report.ErrUnknownFormat) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_FORMAT", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}

		c.Attachment(rep.FileName(format))
		c.Set(fiber.HeaderContentType, report.ContentType(format))
		return c.Send(buf.Bytes())
	}
}
