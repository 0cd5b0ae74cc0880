package model

import (
	"errors"
	"sort"
)

// ErrUnknownField is returned when a form field name is not part of the intake form.
var ErrUnknownField = errors.New("unknown form field")

// Default values of the intake form.
const (
	DefaultGender         = "Male"
	DefaultBurialLocation = "Block A"
	DefaultPrimaryService = "Burial"
	DefaultExtraService   = "None"
)

// Form is the full field set of the record intake form. Every value is kept as
// the string the operator typed; conversion happens when the payload is built.
// It is also the snapshot persisted as a draft.
type Form struct {
	RecordNumber                string `json:"recordNumber"`
	FirstName                   string `json:"firstName"`
	MiddleName                  string `json:"middleName"`
	LastName                    string `json:"lastName"`
	IDPassportNo                string `json:"idPassportNo"`
	Gender                      string `json:"gender"`
	Age                         string `json:"age"`
	AgeCategory                 string `json:"ageCategory"`
	DateOfDeath                 string `json:"dateOfDeath"`
	NextOfKinName               string `json:"nextOfKinName"`
	NextOfKinContact            string `json:"nextOfKinContact"`
	NextOfKinIDPassport         string `json:"nextOfKinIdPassport"`
	BurialLocation              string `json:"burialLocation"`
	PrimaryService              string `json:"primaryService"`
	AmountPaidBurial            string `json:"amountPaidBurial"`
	SecondaryService            string `json:"secondaryService"`
	AmountPaidSecondary         string `json:"amountPaidSecondary"`
	TertiaryService             string `json:"tertiaryService"`
	AmountPaidTertiary          string `json:"amountPaidTertiary"`
	MpesaRefNo                  string `json:"mpesaRefNo"`
	ReceiptNo                   string `json:"receiptNo"`
	Status                      string `json:"status"`
	RejectionReason             string `json:"rejectionReason"`
	DateOfBurial                string `json:"dateOfBurial"`
	NextOfKinRelationship       string `json:"nextOfKinRelationship"`
	BurialPermitNumber          string `json:"burialPermitNumber"`
	BurialPermitDate            string `json:"burialPermitDate"`
	BurialPermitIssuedBy        string `json:"burialPermitIssuedBy"`
	BurialPermitIssuedByContact string `json:"burialPermitIssuedByContact"`
	BurialPermitIssuedTo        string `json:"burialPermitIssuedTo"`
	BurialPermitIssuedToContact string `json:"burialPermitIssuedToContact"`
}

// NewForm returns a blank form with defaults applied; today is the
// date-of-death default in YYYY-MM-DD form.
func NewForm(today string) Form {
	return Form{
		Gender:           DefaultGender,
		DateOfDeath:      today,
		BurialLocation:   DefaultBurialLocation,
		PrimaryService:   DefaultPrimaryService,
		SecondaryService: DefaultExtraService,
		TertiaryService:  DefaultExtraService,
		Status:           string(StatusPending),
	}
}

var formFields = map[string]func(*Form) *string{
	"recordNumber":                func(f *Form) *string { return &f.RecordNumber },
	"firstName":                   func(f *Form) *string { return &f.FirstName },
	"middleName":                  func(f *Form) *string { return &f.MiddleName },
	"lastName":                    func(f *Form) *string { return &f.LastName },
	"idPassportNo":                func(f *Form) *string { return &f.IDPassportNo },
	"gender":                      func(f *Form) *string { return &f.Gender },
	"age":                         func(f *Form) *string { return &f.Age },
	"ageCategory":                 func(f *Form) *string { return &f.AgeCategory },
	"dateOfDeath":                 func(f *Form) *string { return &f.DateOfDeath },
	"nextOfKinName":               func(f *Form) *string { return &f.NextOfKinName },
	"nextOfKinContact":            func(f *Form) *string { return &f.NextOfKinContact },
	"nextOfKinIdPassport":         func(f *Form) *string { return &f.NextOfKinIDPassport },
	"burialLocation":              func(f *Form) *string { return &f.BurialLocation },
	"primaryService":              func(f *Form) *string { return &f.PrimaryService },
	"amountPaidBurial":            func(f *Form) *string { return &f.AmountPaidBurial },
	"secondaryService":            func(f *Form) *string { return &f.SecondaryService },
	"amountPaidSecondary":         func(f *Form) *string { return &f.AmountPaidSecondary },
	"tertiaryService":             func(f *Form) *string { return &f.TertiaryService },
	"amountPaidTertiary":          func(f *Form) *string { return &f.AmountPaidTertiary },
	"mpesaRefNo":                  func(f *Form) *string { return &f.MpesaRefNo },
	"receiptNo":                   func(f *Form) *string { return &f.ReceiptNo },
	"status":                      func(f *Form) *string { return &f.Status },
	"rejectionReason":             func(f *Form) *string { return &f.RejectionReason },
	"dateOfBurial":                func(f *Form) *string { return &f.DateOfBurial },
	"nextOfKinRelationship":       func(f *Form) *string { return &f.NextOfKinRelationship },
	"burialPermitNumber":          func(f *Form) *string { return &f.BurialPermitNumber },
	"burialPermitDate":            func(f *Form) *string { return &f.BurialPermitDate },
	"burialPermitIssuedBy":        func(f *Form) *string { return &f.BurialPermitIssuedBy },
	"burialPermitIssuedByContact": func(f *Form) *string { return &f.BurialPermitIssuedByContact },
	"burialPermitIssuedTo":        func(f *Form) *string { return &f.BurialPermitIssuedTo },
	"burialPermitIssuedToContact": func(f *Form) *string { return &f.BurialPermitIssuedToContact },
}

// FormFieldNames lists every field name in sorted order.
func FormFieldNames() []string {
	names := make([]string, 0, len(formFields))
	for name := range formFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the value of a named field.
func (f *Form) Get(name string) (string, error) {
	field, ok := formFields[name]
	if !ok {
		return "", ErrUnknownField
	}
	return *field(f), nil
}

// Set assigns a named field.
func (f *Form) Set(name, value string) error {
	field, ok := formFields[name]
	if !ok {
		return ErrUnknownField
	}
	*field(f) = value
	return nil
}

// Values returns the form as a field-name to value mapping.
func (f *Form) Values() map[string]string {
	out := make(map[string]string, len(formFields))
	for name, field := range formFields {
		out[name] = *field(f)
	}
	return out
}

// HasName reports whether the first or last name has been filled in.
func (f *Form) HasName() bool {
	return f.FirstName != "" || f.LastName != ""
}
