package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
)

type rejectRequest struct {
	Reason string `json:"reason"`
}

// ListPendingVerifications lists public submissions waiting for review.
//
// @Summary Pending public submissions
// @Tags verifications
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} model.PublicRecordPage
// @Failure 502 {object} errorPayload
// @Router /api/verifications [get]
func ListPendingVerifications(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, limit, err := parsePaging(c)
		if err != nil {
			return writePagingError(c, err)
		}
		res, err := api.ListPublicRecords(c.UserContext(), string(model.StatusPending), page, limit)
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(res)
	}
}

// VerifyRecord accepts a public submission into the main records.
//
// @Summary Verify submission
// @Tags verifications
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} messagePayload
// @Failure 404 {object} errorPayload
// @Router /api/verifications/{id}/verify [post]
func VerifyRecord(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		msg, err := api.VerifyPublicRecord(c.UserContext(), c.Params("id"), apiclient.Verification{Status: model.StatusVerified})
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(messagePayload{Message: orMessage(msg, "Record verified")})
	}
}

// RejectRecord rejects a public submission. A reason is required.
//
// @Summary Reject submission
// @Tags verifications
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param reason body rejectRequest true "Rejection reason"
// @Success 200 {object} messagePayload
// @Failure 400 {object} errorPayload
// @Router /api/verifications/{id}/reject [post]
func RejectRecord(api RemoteAPI) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req rejectRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		reason := strings.TrimSpace(req.Reason)
		if reason == "" {
			return writeError(c, fiber.StatusBadRequest, "REASON_REQUIRED", "please provide a reason for rejection")
		}
		msg, err := api.VerifyPublicRecord(c.UserContext(), c.Params("id"), apiclient.Verification{
			Status:          model.StatusRejected,
			RejectionReason: reason,
		})
		if err != nil {
			return writeUpstreamError(c, err)
		}
		return c.JSON(messagePayload{Message: orMessage(msg, "Record rejected")})
	}
}
