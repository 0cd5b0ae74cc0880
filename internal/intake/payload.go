package intake

import (
	"strconv"

	"burialdesk/internal/model"
)

// optionalFields are left out of the payload when blank; the API rejects
// empty enum values for some of them.
var optionalFields = map[string]bool{
	"middleName":          true,
	"idPassportNo":        true,
	"nextOfKinIdPassport": true,
	"amountPaidBurial":    true,
	"amountPaidSecondary": true,
	"amountPaidTertiary":  true,
	"mpesaRefNo":          true,
	"secondaryService":    true,
	"tertiaryService":     true,
	"rejectionReason":     true,
}

var numericFields = map[string]bool{
	"age":                 true,
	"amountPaidBurial":    true,
	"amountPaidSecondary": true,
	"amountPaidTertiary":  true,
}

// buildPayload turns the form into the create/update request body.
func buildPayload(f model.Form, attachments []model.Attachment) map[string]any {
	rejected := f.Status == string(model.StatusRejected)

	out := make(map[string]any, len(model.FormFieldNames())+1)
	for name, value := range f.Values() {
		if optionalFields[name] && value == "" && !(name == "rejectionReason" && rejected) {
			continue
		}
		out[name] = numericValue(name, value)
	}

	if attachments == nil {
		attachments = []model.Attachment{}
	}
	out["attachments"] = attachments
	return out
}

// numericValue sends numbers as JSON numbers when they parse, and the raw
// string otherwise so the API reports the problem.
func numericValue(name, value string) any {
	if !numericFields[name] || value == "" {
		return value
	}
	if name == "age" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		return value
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	return value
}
