// Package report builds the overview and record exports offered to operators.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
	"burialdesk/internal/settings"
)

// exportLimit fetches the whole filtered set in one page.
const exportLimit = 10000

// DateRange is a relative date filter preset.
type DateRange string

const (
	RangeAll        DateRange = "all"
	RangeLast7Days  DateRange = "last7days"
	RangeLast30Days DateRange = "last30days"
	RangeLast90Days DateRange = "last90days"
	RangeThisYear   DateRange = "thisyear"
)

// Kind selects what an export contains.
type Kind string

const (
	KindSummary  Kind = "Summary"
	KindDetailed Kind = "Detailed"
)

var (
	ErrUnknownRange  = errors.New("unknown date range")
	ErrUnknownKind   = errors.New("unknown report type")
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseRange accepts a preset name; "" means all.
func ParseRange(v string) (DateRange, error) {
	switch r := DateRange(strings.ToLower(v)); r {
	case "":
		return RangeAll, nil
	case RangeAll, RangeLast7Days, RangeLast30Days, RangeLast90Days, RangeThisYear:
		return r, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRange, v)
}

// ParseKind accepts "summary" or "detailed" in any case; "" means detailed.
func ParseKind(v string) (Kind, error) {
	switch strings.ToLower(v) {
	case "", "detailed":
		return KindDetailed, nil
	case "summary":
		return KindSummary, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, v)
}

// Bounds returns the start and end of the range relative to now. Both are
// nil for RangeAll. The end is the last instant of today.
func (r DateRange) Bounds(now time.Time) (start, end *time.Time) {
	if r == RangeAll || r == "" {
		return nil, nil
	}

	y, m, d := now.Date()
	e := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Millisecond), now.Location())
	var s time.Time
	switch r {
	case RangeLast7Days:
		s = now.AddDate(0, 0, -7)
	case RangeLast30Days:
		s = now.AddDate(0, 0, -30)
	case RangeLast90Days:
		s = now.AddDate(0, 0, -90)
	case RangeThisYear:
		s = time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, nil
	}
	return &s, &e
}

// Filter narrows the exported record set.
type Filter struct {
	Range          DateRange
	Gender         string
	BurialLocation string
}

// Query renders the filter as a records query covering the whole result set.
func (f Filter) Query(now time.Time) apiclient.RecordQuery {
	start, end := f.Range.Bounds(now)
	return apiclient.RecordQuery{
		Gender:         f.Gender,
		BurialLocation: f.BurialLocation,
		StartDate:      start,
		EndDate:        end,
		Limit:          exportLimit,
	}
}

// Report is the data behind one export.
type Report struct {
	Kind       Kind
	Filter     Filter
	Generated  time.Time
	DateFormat string
	Overview   model.Overview
	Records    []model.Record
}

// Source is the slice of the remote API used by reports.
type Source interface {
	Overview(ctx context.Context) (*model.Overview, error)
	ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error)
}

// Service assembles reports.
type Service struct {
	src Source
	log *zap.Logger
	now func() time.Time
}

// NewService creates a Service.
func NewService(src Source, log *zap.Logger) *Service {
	return &Service{src: src, log: log, now: time.Now}
}

// Overview returns the dashboard statistics.
func (s *Service) Overview(ctx context.Context) (*model.Overview, error) {
	o, err := s.src.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("load overview: %w", err)
	}
	return o, nil
}

// Build fetches the statistics and the filtered records in parallel.
func (s *Service) Build(ctx context.Context, kind Kind, f Filter, dateFormat string) (*Report, error) {
	now := s.now()
	rep := &Report{Kind: kind, Filter: f, Generated: now, DateFormat: dateFormat}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		o, err := s.src.Overview(gctx)
		if err != nil {
			return fmt.Errorf("load overview: %w", err)
		}
		rep.Overview = *o
		return nil
	})
	g.Go(func() error {
		page, err := s.src.ListRecords(gctx, f.Query(now))
		if err != nil {
			return fmt.Errorf("load records: %w", err)
		}
		rep.Records = page.Records
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.log.Info("report built",
		zap.String("kind", string(kind)),
		zap.String("range", string(f.Range)),
		zap.Int("records", len(rep.Records)),
	)
	return rep, nil
}

// FileName is "<kind>-burial-report-YYYY-MM-DD.<ext>".
func (r *Report) FileName(ext string) string {
	return fmt.Sprintf("%s-burial-report-%s.%s", strings.ToLower(string(r.Kind)), r.Generated.Format(time.DateOnly), ext)
}

// RecordColumns are the headers of the record table in every export.
var RecordColumns = []string{"Record No.", "Name", "Date of Death", "Burial Location", "Gender", "Status"}

func (r *Report) recordRow(rec model.Record) []string {
	return []string{
		rec.RecordNumber,
		rec.FullName(),
		formatAPIDate(rec.DateOfDeath, r.DateFormat),
		rec.BurialLocation,
		rec.Gender,
		string(rec.Status),
	}
}

func (r *Report) summaryRows() [][]any {
	return [][]any{
		{"Report Type", string(r.Kind)},
		{"Generated Date", settings.FormatDate(r.Generated, r.DateFormat)},
		{"Total Records", r.Overview.TotalRecords},
		{"Verified Records", r.Overview.VerifiedRecords},
		{"Pending Records", r.Overview.PendingRecords},
		{"Males", r.Overview.GenderCount("Male")},
		{"Females", r.Overview.GenderCount("Female")},
		{"Records Exported", len(r.Records)},
	}
}

// formatAPIDate renders an API date string, leaving unparseable values as sent.
func formatAPIDate(v, format string) string {
	t, err := settings.ParseAPIDate(v)
	if err != nil {
		return v
	}
	return settings.FormatDate(t, format)
}

// Summary is the plain-text record sheet offered for download.
func Summary(rec model.Record, dateFormat string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Burial Record: %s\n", rec.RecordNumber)
	fmt.Fprintf(&b, "Name: %s\n", rec.FullName())
	fmt.Fprintf(&b, "Date of Death: %s\n", formatAPIDate(rec.DateOfDeath, dateFormat))
	fmt.Fprintf(&b, "Next of Kin: %s\n", rec.NextOfKinName)
	fmt.Fprintf(&b, "Burial Location: %s\n", rec.BurialLocation)
	fmt.Fprintf(&b, "Status: %s", rec.Status)
	return b.String()
}
