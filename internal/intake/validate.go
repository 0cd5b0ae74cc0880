package intake

import (
	"strconv"
	"strings"
	"time"

	"burialdesk/internal/model"
)

// Validation messages shown to the operator.
const (
	MsgFutureDeath         = "Date of Death cannot be in the future"
	MsgInvalidDeathDate    = "Date of Death must be a valid date"
	MsgInvalidAge          = "Age must be a valid positive number"
	MsgStillbornAge        = "Stillborn age should be 0"
	MsgInfantAge           = "Infant age must be between 0 and 1 year"
	MsgChildAge            = "Child age must be between 1 and 12 years"
	MsgAdultAge            = "Adult age must be above 12 years"
	MsgRejectionRequired   = "Rejection reason is required when status is Rejected"
	MsgAttachmentsRequired = "Attachments are required for this age category. Please upload at least one document."
)

// ValidationError is a rule violation found before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// validateForm checks f in a fixed order and returns the first violation.
// newFiles is the number of files about to be uploaded, existing the number
// of attachments already on the record (edit mode only).
func validateForm(f model.Form, newFiles, existing int, mode Mode, now time.Time) error {
	if f.DateOfDeath != "" {
		dod, err := time.ParseInLocation(time.DateOnly, f.DateOfDeath, now.Location())
		if err != nil {
			return invalid("dateOfDeath", MsgInvalidDeathDate)
		}
		y, m, d := now.Date()
		endOfToday := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
		if dod.After(endOfToday) {
			return invalid("dateOfDeath", MsgFutureDeath)
		}
	}

	if f.AgeCategory != "" && f.Age != "" {
		age, err := strconv.Atoi(strings.TrimSpace(f.Age))
		if err != nil || age < 0 {
			return invalid("age", MsgInvalidAge)
		}
		if msg := ageBoundsMessage(model.AgeCategory(f.AgeCategory), age); msg != "" {
			return invalid("age", msg)
		}
	}

	if f.Status == string(model.StatusRejected) && strings.TrimSpace(f.RejectionReason) == "" {
		return invalid("rejectionReason", MsgRejectionRequired)
	}

	exempt := model.AgeCategory(f.AgeCategory).AttachmentExempt()
	keepsExisting := mode == ModeEdit && existing > 0
	if !exempt && !keepsExisting && newFiles == 0 {
		return invalid("attachments", MsgAttachmentsRequired)
	}
	return nil
}

func ageBoundsMessage(c model.AgeCategory, age int) string {
	switch c {
	case model.AgeCategoryStillborn:
		if age > 0 {
			return MsgStillbornAge
		}
	case model.AgeCategoryInfant:
		if age > 1 {
			return MsgInfantAge
		}
	case model.AgeCategoryChild:
		if age < 1 || age > 12 {
			return MsgChildAge
		}
	case model.AgeCategoryAdult:
		if age <= 12 {
			return MsgAdultAge
		}
	}
	return ""
}
