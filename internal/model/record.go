package model

// AgeCategory buckets a deceased person's age and drives the required-field
// and attachment rules of the intake form.
type AgeCategory string

const (
	AgeCategoryStillborn AgeCategory = "Stillborn"
	AgeCategoryInfant    AgeCategory = "Infant"
	AgeCategoryChild     AgeCategory = "Child"
	AgeCategoryAdult     AgeCategory = "Adult"
)

// AttachmentExempt reports whether records of this category may be saved without documents.
func (c AgeCategory) AttachmentExempt() bool {
	return c == AgeCategoryStillborn || c == AgeCategoryInfant
}

// Status is the verification state of a record.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusVerified Status = "Verified"
	StatusRejected Status = "Rejected"
)

// Attachment is a supporting document stored in object storage.
type Attachment struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// Record is the client-side projection of a burial record owned by the remote API.
// Dates are kept as the API sends them (ISO-8601 strings).
type Record struct {
	ID                          string       `json:"_id,omitempty"`
	RecordNumber                string       `json:"recordNumber"`
	FirstName                   string       `json:"firstName"`
	MiddleName                  string       `json:"middleName,omitempty"`
	LastName                    string       `json:"lastName"`
	IDPassportNo                string       `json:"idPassportNo,omitempty"`
	Gender                      string       `json:"gender,omitempty"`
	Age                         *int         `json:"age,omitempty"`
	AgeCategory                 AgeCategory  `json:"ageCategory,omitempty"`
	DateOfDeath                 string       `json:"dateOfDeath,omitempty"`
	DateOfBurial                string       `json:"dateOfBurial,omitempty"`
	NextOfKinName               string       `json:"nextOfKinName,omitempty"`
	NextOfKinContact            string       `json:"nextOfKinContact,omitempty"`
	NextOfKinIDPassport         string       `json:"nextOfKinIdPassport,omitempty"`
	NextOfKinRelationship       string       `json:"nextOfKinRelationship,omitempty"`
	BurialLocation              string       `json:"burialLocation,omitempty"`
	PrimaryService              string       `json:"primaryService,omitempty"`
	AmountPaidBurial            *float64     `json:"amountPaidBurial,omitempty"`
	SecondaryService            string       `json:"secondaryService,omitempty"`
	AmountPaidSecondary         *float64     `json:"amountPaidSecondary,omitempty"`
	TertiaryService             string       `json:"tertiaryService,omitempty"`
	AmountPaidTertiary          *float64     `json:"amountPaidTertiary,omitempty"`
	MpesaRefNo                  string       `json:"mpesaRefNo,omitempty"`
	ReceiptNo                   string       `json:"receiptNo,omitempty"`
	Status                      Status       `json:"status,omitempty"`
	RejectionReason             string       `json:"rejectionReason,omitempty"`
	BurialPermitNumber          string       `json:"burialPermitNumber,omitempty"`
	BurialPermitDate            string       `json:"burialPermitDate,omitempty"`
	BurialPermitIssuedBy        string       `json:"burialPermitIssuedBy,omitempty"`
	BurialPermitIssuedByContact string       `json:"burialPermitIssuedByContact,omitempty"`
	BurialPermitIssuedTo        string       `json:"burialPermitIssuedTo,omitempty"`
	BurialPermitIssuedToContact string       `json:"burialPermitIssuedToContact,omitempty"`
	Attachments                 []Attachment `json:"attachments,omitempty"`
	CreatedBy                   string       `json:"createdBy,omitempty"`
	CreatedAt                   string       `json:"createdAt,omitempty"`
}

// FullName joins first, middle and last name with single spaces.
func (r Record) FullName() string {
	name := r.FirstName
	for _, part := range []string{r.MiddleName, r.LastName} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}

// RecordPage is one page of the records listing.
type RecordPage struct {
	Records     []Record `json:"records"`
	Total       int      `json:"total"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
}

// Pagination describes the position of a public records page.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	Total       int `json:"total"`
}

// PublicRecordPage is the envelope returned by the public submissions listing.
type PublicRecordPage struct {
	Success    bool       `json:"success"`
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
