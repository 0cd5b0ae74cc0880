// Package intake drives one record intake form: draft recovery, record
// number preview, validation and the upload-then-save submission.
package intake

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/draft"
	"burialdesk/internal/model"
	"burialdesk/internal/storage"
)

// State is the lifecycle position of the form.
type State string

const (
	StateIdle       State = "idle"
	StateComposing  State = "composing"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailure    State = "failure"
)

// Mode tells whether the form creates a new record or edits an existing one.
type Mode string

const (
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

// Notices reported to the operator.
const (
	NoticeDraftRestored = "Draft restored from previous session"
	MsgUploadFailed     = "Failed to upload attachments. Please try again."
	MsgSaveFailed       = "Error saving record"
	MsgLoadFailed       = "Error loading record data"
	MsgUpdated          = "Burial record updated successfully!"
)

var (
	// ErrSubmitInProgress is returned when Submit is called while a submission runs.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrUploadFailed wraps the first failed attachment upload.
	ErrUploadFailed = errors.New("attachment upload failed")
	// ErrNotOpen is returned when submitting a form that was never opened.
	ErrNotOpen = errors.New("form is not open")
)

// RecordAPI is the slice of the remote API used by the controller.
type RecordAPI interface {
	GetRecord(ctx context.Context, id string) (*model.Record, error)
	CreateRecord(ctx context.Context, payload map[string]any) (*model.Record, error)
	UpdateRecord(ctx context.Context, id string, payload map[string]any) (*model.Record, error)
}

// Previewer supplies the next record number.
type Previewer interface {
	PreviewNow(ctx context.Context) string
}

// Drafts is the single-slot draft store.
type Drafts interface {
	Load(ctx context.Context) (model.Form, bool)
	Clear(ctx context.Context) error
	Schedule(snapshot model.Form)
	Cancel()
	Status() draft.SaveStatus
}

// AutoSaver reports whether draft autosave is enabled.
type AutoSaver interface {
	AutoSave() bool
}

// View is a consistent copy of the controller state.
type View struct {
	State               State              `json:"state"`
	Mode                Mode               `json:"mode"`
	EditID              string             `json:"editId,omitempty"`
	Form                model.Form         `json:"form"`
	ExistingAttachments []model.Attachment `json:"existingAttachments"`
	AutoSaveStatus      draft.SaveStatus   `json:"autoSaveStatus"`
	Notice              string             `json:"notice,omitempty"`
	Error               string             `json:"error,omitempty"`
}

// Result describes a successful submission.
type Result struct {
	Mode    Mode          `json:"mode"`
	Record  *model.Record `json:"record"`
	Message string        `json:"message"`
}

// Deps groups the collaborators of a Controller.
type Deps struct {
	Records  RecordAPI
	Numbers  Previewer
	Drafts   Drafts
	Settings AutoSaver
	Uploader storage.Uploader
	Metrics  *Metrics
	Log      *zap.Logger
}

// Controller is the state machine of one intake form. All methods are safe
// for concurrent use; only one Submit runs at a time.
type Controller struct {
	deps Deps
	now  func() time.Time

	mu       sync.Mutex
	state    State
	mode     Mode
	editID   string
	form     model.Form
	existing []model.Attachment
	notice   string
	lastErr  string
}

// NewController creates an idle controller in new-record mode.
func NewController(deps Deps) *Controller {
	c := &Controller{deps: deps, now: time.Now, state: StateIdle, mode: ModeNew}
	c.form = model.NewForm(c.today())
	return c
}

func (c *Controller) today() string {
	return c.now().Format(time.DateOnly)
}

// OpenNew starts composing a new record. A stored draft is restored when
// autosave is on, then the record number preview is filled in.
func (c *Controller) OpenNew(ctx context.Context) View {
	form := model.NewForm(c.today())
	notice := ""
	if c.deps.Settings.AutoSave() {
		if d, ok := c.deps.Drafts.Load(ctx); ok {
			form = d
			notice = NoticeDraftRestored
		}
	}
	form.RecordNumber = c.deps.Numbers.PreviewNow(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateComposing
	c.mode = ModeNew
	c.editID = ""
	c.form = form
	c.existing = nil
	c.notice = notice
	c.lastErr = ""
	return c.viewLocked()
}

// OpenEdit loads record id into the form. The draft store is not touched.
func (c *Controller) OpenEdit(ctx context.Context, id string) (View, error) {
	c.deps.Drafts.Cancel()

	rec, err := c.deps.Records.GetRecord(ctx, id)
	if err != nil {
		c.deps.Log.Error("load record for edit failed", zap.String("record_id", id), zap.Error(err))
		return View{}, fmt.Errorf("%s: %w", MsgLoadFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateComposing
	c.mode = ModeEdit
	c.editID = id
	c.form = formFromRecord(rec)
	c.existing = append([]model.Attachment(nil), rec.Attachments...)
	c.notice = ""
	c.lastErr = ""
	return c.viewLocked(), nil
}

// Set updates one field. Moving status away from Rejected clears the
// rejection reason.
func (c *Controller) Set(name, value string) error {
	return c.Apply(map[string]string{name: value})
}

// Apply updates several fields at once. Unknown names reject the whole
// change. status is applied last so its clearing rule wins.
func (c *Controller) Apply(values map[string]string) error {
	names := make([]string, 0, len(values))
	for name := range values {
		var probe model.Form
		if _, err := probe.Get(name); err != nil {
			return fmt.Errorf("%w: %s", err, name)
		}
		if name != "status" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if _, ok := values["status"]; ok {
		names = append(names, "status")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, name := range names {
		_ = c.form.Set(name, values[name])
		if name == "status" && values[name] != string(model.StatusRejected) {
			c.form.RejectionReason = ""
		}
	}
	if c.state != StateSubmitting {
		c.state = StateComposing
	}
	c.notice = ""
	c.scheduleDraftLocked()
	return nil
}

func (c *Controller) scheduleDraftLocked() {
	if c.mode != ModeNew || !c.deps.Settings.AutoSave() {
		return
	}
	if c.form.FirstName == "" && c.form.LastName == "" {
		return
	}
	c.deps.Drafts.Schedule(c.form)
}

// Validate checks the current form as if files were about to be submitted.
func (c *Controller) Validate(files []storage.File) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return validateForm(c.form, len(files), len(c.existing), c.mode, c.now())
}

// Submit uploads files concurrently, waits for all of them, then creates
// or updates the record. Validation failures leave the state unchanged.
// Uploaded files of a failed submission are not removed.
func (c *Controller) Submit(ctx context.Context, files []storage.File) (*Result, error) {
	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if c.state == StateIdle {
		c.mu.Unlock()
		return nil, ErrNotOpen
	}
	if err := validateForm(c.form, len(files), len(c.existing), c.mode, c.now()); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.state = StateSubmitting
	c.lastErr = ""
	mode, editID := c.mode, c.editID
	form := c.form
	existing := append([]model.Attachment(nil), c.existing...)
	c.mu.Unlock()

	log := c.deps.Log.With(zap.String("mode", string(mode)), zap.String("record_number", form.RecordNumber))

	uploaded, err := c.uploadAll(ctx, files)
	if err != nil {
		log.Error("attachment upload failed", zap.Int("files", len(files)), zap.Error(err))
		c.deps.Metrics.submission(mode, "upload_error")
		return nil, c.fail(MsgUploadFailed, err)
	}

	attachments := uploaded
	if mode == ModeEdit {
		attachments = append(existing, uploaded...)
	}
	payload := buildPayload(form, attachments)

	var rec *model.Record
	if mode == ModeEdit {
		rec, err = c.deps.Records.UpdateRecord(ctx, editID, payload)
	} else {
		rec, err = c.deps.Records.CreateRecord(ctx, payload)
	}
	if err != nil {
		log.Error("record save failed", zap.Error(err))
		c.deps.Metrics.submission(mode, "api_error")
		return nil, c.fail(apiMessage(err), err)
	}
	c.deps.Metrics.submission(mode, "ok")

	if mode == ModeEdit {
		c.mu.Lock()
		c.state = StateSuccess
		c.existing = attachments
		c.mu.Unlock()
		log.Info("record updated", zap.String("record_id", editID))
		return &Result{Mode: mode, Record: rec, Message: MsgUpdated}, nil
	}

	if err := c.deps.Drafts.Clear(ctx); err != nil {
		log.Warn("clear draft after create failed", zap.Error(err))
	}
	next := model.NewForm(c.today())
	next.RecordNumber = c.deps.Numbers.PreviewNow(ctx)

	c.mu.Lock()
	c.state = StateComposing
	c.form = next
	c.existing = nil
	c.mu.Unlock()

	number := form.RecordNumber
	if rec != nil && rec.RecordNumber != "" {
		number = rec.RecordNumber
	}
	log.Info("record created", zap.String("created_record_number", number))
	return &Result{Mode: mode, Record: rec, Message: fmt.Sprintf("Record %s created successfully!", number)}, nil
}

// uploadAll uploads every file in parallel and returns the attachments in
// input order. The first error cancels the remaining uploads.
func (c *Controller) uploadAll(ctx context.Context, files []storage.File) ([]model.Attachment, error) {
	if len(files) == 0 {
		return nil, nil
	}

	out := make([]model.Attachment, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			path, err := c.deps.Uploader.Upload(gctx, f)
			c.deps.Metrics.upload(err)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrUploadFailed, f.Name, err)
			}
			out[i] = model.Attachment{Filename: f.Name, Path: path}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// SubmitError is a failed submission with the message for the operator.
type SubmitError struct {
	Message string
	Err     error
}

func (e *SubmitError) Error() string { return e.Message + ": " + e.Err.Error() }
func (e *SubmitError) Unwrap() error { return e.Err }

func (c *Controller) fail(msg string, err error) error {
	c.mu.Lock()
	c.state = StateFailure
	c.lastErr = msg
	c.mu.Unlock()
	return &SubmitError{Message: msg, Err: err}
}

func apiMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return MsgSaveFailed
}

// Reset clears the draft and starts a blank new record.
func (c *Controller) Reset(ctx context.Context) (View, error) {
	if err := c.deps.Drafts.Clear(ctx); err != nil {
		return View{}, err
	}
	form := model.NewForm(c.today())
	form.RecordNumber = c.deps.Numbers.PreviewNow(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateComposing
	c.mode = ModeNew
	c.editID = ""
	c.form = form
	c.existing = nil
	c.notice = ""
	c.lastErr = ""
	return c.viewLocked(), nil
}

// Snapshot returns a copy of the current form.
func (c *Controller) Snapshot() model.Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// State returns the lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Mode returns whether a new record or an edit is open.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// AutoSaveStatus mirrors the draft store indicator.
func (c *Controller) AutoSaveStatus() draft.SaveStatus {
	return c.deps.Drafts.Status()
}

// View returns the full controller state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	v := View{
		State:               c.state,
		Mode:                c.mode,
		EditID:              c.editID,
		Form:                c.form,
		ExistingAttachments: append([]model.Attachment{}, c.existing...),
		Notice:              c.notice,
		Error:               c.lastErr,
	}
	if c.mode == ModeNew {
		v.AutoSaveStatus = c.deps.Drafts.Status()
	}
	return v
}

// formFromRecord maps an API record onto the form, applying the form
// defaults for blank values and cutting dates to YYYY-MM-DD.
func formFromRecord(r *model.Record) model.Form {
	f := model.Form{
		RecordNumber:                r.RecordNumber,
		FirstName:                   r.FirstName,
		MiddleName:                  r.MiddleName,
		LastName:                    r.LastName,
		IDPassportNo:                r.IDPassportNo,
		Gender:                      orDefault(r.Gender, model.DefaultGender),
		AgeCategory:                 string(r.AgeCategory),
		DateOfDeath:                 dateOnly(r.DateOfDeath),
		NextOfKinName:               r.NextOfKinName,
		NextOfKinContact:            r.NextOfKinContact,
		NextOfKinIDPassport:         r.NextOfKinIDPassport,
		BurialLocation:              orDefault(r.BurialLocation, model.DefaultBurialLocation),
		PrimaryService:              orDefault(r.PrimaryService, model.DefaultPrimaryService),
		AmountPaidBurial:            amount(r.AmountPaidBurial),
		SecondaryService:            orDefault(r.SecondaryService, model.DefaultExtraService),
		AmountPaidSecondary:         amount(r.AmountPaidSecondary),
		TertiaryService:             orDefault(r.TertiaryService, model.DefaultExtraService),
		AmountPaidTertiary:          amount(r.AmountPaidTertiary),
		MpesaRefNo:                  r.MpesaRefNo,
		ReceiptNo:                   r.ReceiptNo,
		Status:                      orDefault(string(r.Status), string(model.StatusPending)),
		RejectionReason:             r.RejectionReason,
		DateOfBurial:                dateOnly(r.DateOfBurial),
		NextOfKinRelationship:       r.NextOfKinRelationship,
		BurialPermitNumber:          r.BurialPermitNumber,
		BurialPermitDate:            dateOnly(r.BurialPermitDate),
		BurialPermitIssuedBy:        r.BurialPermitIssuedBy,
		BurialPermitIssuedByContact: r.BurialPermitIssuedByContact,
		BurialPermitIssuedTo:        r.BurialPermitIssuedTo,
		BurialPermitIssuedToContact: r.BurialPermitIssuedToContact,
	}
	if r.Age != nil {
		f.Age = fmt.Sprint(*r.Age)
	}
	return f
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func dateOnly(v string) string {
	date, _, _ := strings.Cut(v, "T")
	return date
}

func amount(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(*v)
}
