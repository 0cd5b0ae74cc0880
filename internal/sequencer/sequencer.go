// Package sequencer previews the next human-readable record number
// (BR-<year>-<5 digits>) from the records already known to the API.
package sequencer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
)

// searchLimit is large enough to cover a full year of records in one page.
const searchLimit = 10000

var numberPattern = regexp.MustCompile(`^BR-(\d{4})-(\d{5})$`)

// ErrMalformedNumber is returned by Parse for values outside the BR-YYYY-NNNNN format.
var ErrMalformedNumber = errors.New("malformed record number")

// RecordSearcher lists records matching a query.
type RecordSearcher interface {
	ListRecords(ctx context.Context, q apiclient.RecordQuery) (*model.RecordPage, error)
}

// Sequencer computes record number previews. It never writes anything, so
// repeated calls with no new records in between return the same value.
type Sequencer struct {
	records RecordSearcher
	log     *zap.Logger
	now     func() time.Time
}

// New creates a Sequencer using the wall clock.
func New(records RecordSearcher, log *zap.Logger) *Sequencer {
	return &Sequencer{records: records, log: log, now: time.Now}
}

// Format renders a record number.
func Format(year, seq int) string {
	return fmt.Sprintf("BR-%04d-%05d", year, seq)
}

// Parse splits a record number into year and sequence.
func Parse(number string) (year, seq int, err error) {
	m := numberPattern.FindStringSubmatch(number)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedNumber, number)
	}
	year, _ = strconv.Atoi(m[1])
	seq, _ = strconv.Atoi(m[2])
	return year, seq, nil
}

// PreviewNow previews the next number for the current calendar year.
func (s *Sequencer) PreviewNow(ctx context.Context) string {
	return s.PreviewNext(ctx, s.now().Year())
}

// PreviewNext returns BR-<year>-<max+1>, or BR-<year>-00001 when the year has
// no numbered records yet. If the lookup fails the suffix falls back to the
// last five digits of the current epoch milliseconds.
func (s *Sequencer) PreviewNext(ctx context.Context, year int) string {
	page, err := s.records.ListRecords(ctx, apiclient.RecordQuery{
		Search: fmt.Sprintf("BR-%d", year),
		Limit:  searchLimit,
	})
	if err != nil {
		fallback := s.fallback(year)
		s.log.Warn("record number lookup failed, using fallback",
			zap.Int("year", year),
			zap.String("record_number", fallback),
			zap.Error(err),
		)
		return fallback
	}

	highest, counted := 0, 0
	for _, r := range page.Records {
		y, seq, err := Parse(r.RecordNumber)
		if err != nil || y != year || seq <= 0 {
			continue
		}
		counted++
		if seq > highest {
			highest = seq
		}
	}

	next := Format(year, highest+1)
	s.log.Debug("record number preview",
		zap.Int("year", year),
		zap.Int("numbered_records", counted),
		zap.String("record_number", next),
	)
	return next
}

func (s *Sequencer) fallback(year int) string {
	ms := s.now().UnixMilli()
	return Format(year, int(ms%100000))
}
