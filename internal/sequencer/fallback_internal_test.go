package sequencer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/model"
)

type failingSearcher struct{}

func (failingSearcher) ListRecords(context.Context, apiclient.RecordQuery) (*model.RecordPage, error) {
	return nil, errors.New("timeout")
}

func TestSequencer_FallbackUsesEpochMillis(t *testing.T) {
	s := New(failingSearcher{}, zap.NewNop())
	s.now = func() time.Time { return time.UnixMilli(1735689612345) }

	assert.Equal(t, "BR-2025-12345", s.PreviewNext(context.Background(), 2025))
}
