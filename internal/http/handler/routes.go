package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/intake"
	"burialdesk/internal/model"
	"burialdesk/internal/report"
	"burialdesk/internal/storage"
)

// Pinger checks a dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RemoteAPI is the part of the burial records API proxied by the console.
type RemoteAPI interface {
	Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	CurrentUser(ctx context.Context) (*model.User, error)

	ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error)
	GetRecord(ctx context.Context, id string) (*model.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	BulkDeleteRecords(ctx context.Context, ids []string) (string, error)

	ListPublicRecords(ctx context.Context, status string, page, limit int) (*model.PublicRecordPage, error)
	VerifyPublicRecord(ctx context.Context, id string, v apiclient.Verification) (string, error)

	ListUsers(ctx context.Context) ([]model.User, error)
	RegisterUser(ctx context.Context, u model.User) error
	UpdateUser(ctx context.Context, id string, u model.User) error
	DeleteUser(ctx context.Context, id string) error

	ListLocations(ctx context.Context) ([]model.Location, error)
	CreateLocation(ctx context.Context, name string) error
	DeleteLocation(ctx context.Context, id string) error
}

// IntakeController is the record intake state machine.
type IntakeController interface {
	View() intake.View
	OpenNew(ctx context.Context) intake.View
	OpenEdit(ctx context.Context, id string) (intake.View, error)
	Apply(values map[string]string) error
	Reset(ctx context.Context) (intake.View, error)
	Submit(ctx context.Context, files []storage.File) (*intake.Result, error)
}

// DraftStore exposes the stored intake draft.
type DraftStore interface {
	Load(ctx context.Context) (model.Form, bool)
	Clear(ctx context.Context) error
}

// NumberPreviewer previews the next record number.
type NumberPreviewer interface {
	PreviewNow(ctx context.Context) string
}

// Reporter builds statistics and exports.
type Reporter interface {
	Overview(ctx context.Context) (*model.Overview, error)
	Build(ctx context.Context, kind report.Kind, f report.Filter, dateFormat string) (*report.Report, error)
}

// SettingsService caches the operator preferences.
type SettingsService interface {
	Reload(ctx context.Context) model.Settings
	Current() model.Settings
	Update(ctx context.Context, s model.Settings) (string, error)
}

// SessionStore persists the API token.
type SessionStore interface {
	SetToken(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Deps groups everything the console routes need.
type Deps struct {
	State    Pinger
	API      RemoteAPI
	Intake   IntakeController
	Drafts   DraftStore
	Numbers  NumberPreviewer
	Reports  Reporter
	Settings SettingsService
	Session  SessionStore
}

// RegisterRoutes attaches the console routes to app.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.State))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")

	api.Post("/session", Login(d.API, d.Session, d.Settings))
	api.Get("/session", CurrentUser(d.API))
	api.Delete("/session", Logout(d.Session))

	in := api.Group("/intake")
	in.Get("", GetIntake(d.Intake))
	in.Patch("", PatchIntake(d.Intake))
	in.Post("/new", OpenNewIntake(d.Intake))
	in.Post("/edit/:id", OpenEditIntake(d.Intake))
	in.Post("/reset", ResetIntake(d.Intake))
	in.Post("/submit", SubmitIntake(d.Intake))
	in.Get("/preview-number", PreviewNumber(d.Numbers))
	in.Get("/draft", GetDraft(d.Drafts))
	in.Delete("/draft", ClearDraft(d.Drafts))

	api.Get("/records", ListRecords(d.API))
	api.Delete("/records", BulkDeleteRecords(d.API))
	api.Get("/records/:id", GetRecord(d.API))
	api.Delete("/records/:id", DeleteRecord(d.API))
	api.Get("/records/:id/summary", RecordSummary(d.API, d.Settings))

	api.Get("/verifications", ListPendingVerifications(d.API))
	api.Post("/verifications/:id/verify", VerifyRecord(d.API))
	api.Post("/verifications/:id/reject", RejectRecord(d.API))

	api.Get("/reports/overview", ReportOverview(d.Reports))
	api.Get("/reports/export", ExportReport(d.Reports, d.Settings))

	api.Get("/settings", GetSettings(d.Settings))
	api.Put("/settings", UpdateSettings(d.Settings))

	api.Get("/users", ListUsers(d.API))
	api.Post("/users", CreateUser(d.API))
	api.Put("/users/:id", UpdateUser(d.API))
	api.Delete("/users/:id", DeleteUser(d.API))

	api.Get("/locations", ListLocations(d.API))
	api.Post("/locations", CreateLocation(d.API))
	api.Delete("/locations/:id", DeleteLocation(d.API))
}
