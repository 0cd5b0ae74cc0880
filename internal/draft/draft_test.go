package draft

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"burialdesk/internal/model"
	"burialdesk/internal/repository"
	"burialdesk/internal/repository/memory"
	"burialdesk/internal/repository/mocks"
)

// countingState counts Put calls on top of the in-memory store.
type countingState struct {
	*memory.StateMemory
	puts atomic.Int32
}

func (c *countingState) Put(ctx context.Context, key, value string) error {
	c.puts.Add(1)
	return c.StateMemory.Put(ctx, key, value)
}

func fastOptions() Options {
	return Options{Debounce: 20 * time.Millisecond, StatusHold: 40 * time.Millisecond}
}

func TestStore_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), fastOptions(), zap.NewNop())

	_, ok := s.Load(ctx)
	assert.False(t, ok)

	f := model.NewForm("2025-03-01")
	f.FirstName = "Jane"
	f.Age = "54"
	require.NoError(t, s.Save(ctx, f))

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, f, got)

	require.NoError(t, s.Clear(ctx))
	_, ok = s.Load(ctx)
	assert.False(t, ok)
}

func TestStore_Load_FillsDateOfDeath(t *testing.T) {
	ctx := context.Background()
	state := memory.New()
	require.NoError(t, state.Put(ctx, repository.KeyRecordDraft, `{"firstName":"Jane"}`))

	s := New(state, fastOptions(), zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, 6, 9, 15, 0, 0, 0, time.UTC) }

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, "2025-06-09", got.DateOfDeath)
}

func TestStore_Load_Failures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		setupMocks func(m *mocks.MockStateRepository)
	}{
		{
			name: "corrupt json",
			setupMocks: func(m *mocks.MockStateRepository) {
				m.On("Get", ctx, repository.KeyRecordDraft).Return("{not json", nil)
			},
		},
		{
			name: "store error",
			setupMocks: func(m *mocks.MockStateRepository) {
				m.On("Get", ctx, repository.KeyRecordDraft).Return("", errors.New("disk I/O error"))
			},
		},
		{
			name: "absent",
			setupMocks: func(m *mocks.MockStateRepository) {
				m.On("Get", ctx, repository.KeyRecordDraft).Return("", repository.ErrNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mocks.MockStateRepository)
			tt.setupMocks(m)
			s := New(m, fastOptions(), zap.NewNop())

			got, ok := s.Load(ctx)
			assert.False(t, ok)
			assert.Equal(t, model.Form{}, got)
			m.AssertExpectations(t)
		})
	}
}

func TestStore_Schedule_Debounces(t *testing.T) {
	ctx := context.Background()
	state := &countingState{StateMemory: memory.New()}
	s := New(state, fastOptions(), zap.NewNop())

	for _, name := range []string{"J", "Ja", "Jan", "Jane"} {
		f := model.NewForm("2025-03-01")
		f.FirstName = name
		s.Schedule(f)
	}
	assert.Equal(t, StatusSaving, s.Status())

	assert.Eventually(t, func() bool { return s.Status() == StatusSaved }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), state.puts.Load())

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FirstName)

	assert.Eventually(t, func() bool { return s.Status() == StatusNone }, time.Second, 5*time.Millisecond)
}

// readOnlyState fails every write.
type readOnlyState struct {
	*memory.StateMemory
	attempts atomic.Int32
}

func (r *readOnlyState) Put(context.Context, string, string) error {
	r.attempts.Add(1)
	return errors.New("attempt to write a readonly database")
}

func TestStore_Schedule_WriteFailureResetsStatus(t *testing.T) {
	state := &readOnlyState{StateMemory: memory.New()}
	s := New(state, fastOptions(), zap.NewNop())

	s.Schedule(model.Form{FirstName: "Jane"})
	assert.Equal(t, StatusSaving, s.Status())

	assert.Eventually(t, func() bool {
		return state.attempts.Load() == 1 && s.Status() == StatusNone
	}, time.Second, 5*time.Millisecond)
}

func TestStore_Flush(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), Options{Debounce: time.Hour, StatusHold: time.Hour}, zap.NewNop())

	require.NoError(t, s.Flush(ctx))
	_, ok := s.Load(ctx)
	assert.False(t, ok)

	s.Schedule(model.Form{FirstName: "Jane"})
	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, StatusSaved, s.Status())

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FirstName)
}

func TestStore_ClearDropsPending(t *testing.T) {
	ctx := context.Background()
	state := &countingState{StateMemory: memory.New()}
	s := New(state, fastOptions(), zap.NewNop())

	s.Schedule(model.Form{LastName: "Doe"})
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, StatusNone, s.Status())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), state.puts.Load())
	_, ok := s.Load(ctx)
	assert.False(t, ok)
}

// gatedState blocks the first Put until release is closed.
type gatedState struct {
	*memory.StateMemory
	entered chan struct{}
	release chan struct{}
	first   atomic.Bool
}

func (g *gatedState) Put(ctx context.Context, key, value string) error {
	if g.first.CompareAndSwap(false, true) {
		close(g.entered)
		<-g.release
	}
	return g.StateMemory.Put(ctx, key, value)
}

func TestStore_FlushKeepsAutosaveInProgress(t *testing.T) {
	ctx := context.Background()
	state := &gatedState{StateMemory: memory.New(), entered: make(chan struct{}), release: make(chan struct{})}
	s := New(state, Options{Debounce: 10 * time.Millisecond, StatusHold: time.Hour}, zap.NewNop())

	s.Schedule(model.Form{FirstName: "A"})
	firstFlush := make(chan error, 1)
	go func() { firstFlush <- s.Flush(ctx) }()
	<-state.entered

	// This autosave fires and waits behind the blocked write.
	s.Schedule(model.Form{FirstName: "Jane"})
	time.Sleep(50 * time.Millisecond)

	secondFlush := make(chan error, 1)
	go func() { secondFlush <- s.Flush(ctx) }()
	close(state.release)

	require.NoError(t, <-firstFlush)
	require.NoError(t, <-secondFlush)

	got, ok := s.Load(ctx)
	require.True(t, ok)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, StatusSaved, s.Status())
}

func TestStore_FlushWithNothingPendingKeepsStatus(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), Options{Debounce: time.Hour, StatusHold: time.Hour}, zap.NewNop())

	s.Schedule(model.Form{FirstName: "Jane"})
	require.NoError(t, s.Flush(ctx))
	require.NoError(t, s.Flush(ctx))
	assert.Equal(t, StatusSaved, s.Status())
}
