// Package draft keeps one unsent intake form snapshot in the local state
// store so composing a record survives a restart.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"burialdesk/internal/model"
	"burialdesk/internal/repository"
)

// SaveStatus is the transient autosave indicator.
type SaveStatus string

const (
	StatusNone   SaveStatus = ""
	StatusSaving SaveStatus = "saving"
	StatusSaved  SaveStatus = "saved"
)

const writeTimeout = 5 * time.Second

// Options tunes the autosave timing.
type Options struct {
	Debounce   time.Duration
	StatusHold time.Duration
}

// Store is a single-slot draft store. The slot is shared by every operator
// of the same local state store; concurrent writers race and the last write wins.
type Store struct {
	state repository.StateRepository
	log   *zap.Logger
	opts  Options
	now   func() time.Time

	// writeMu orders autosave writes against Clear so a cancelled
	// snapshot cannot be written after the draft was removed.
	writeMu sync.Mutex

	mu      sync.Mutex
	pending *model.Form
	timer   *time.Timer
	hold    *time.Timer
	gen     uint64
	status  SaveStatus

	// inflight counts writes that took their snapshot but have not
	// finished; idle is signalled when it drops to zero.
	inflight int
	idle     *sync.Cond
}

// New creates a Store.
func New(state repository.StateRepository, opts Options, log *zap.Logger) *Store {
	s := &Store{state: state, log: log, opts: opts, now: time.Now}
	s.idle = sync.NewCond(&s.mu)
	return s
}

// Save writes snapshot immediately, overwriting any previous draft.
func (s *Store) Save(ctx context.Context, snapshot model.Form) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	if err := s.state.Put(ctx, repository.KeyRecordDraft, string(raw)); err != nil {
		return fmt.Errorf("write draft: %w", err)
	}
	return nil
}

// Load returns the stored draft. ok is false when there is none or it cannot
// be read; read and decode failures are logged, never returned.
// A draft without a date of death gets today's date.
func (s *Store) Load(ctx context.Context) (model.Form, bool) {
	raw, err := s.state.Get(ctx, repository.KeyRecordDraft)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("draft read failed", zap.Error(err))
		}
		return model.Form{}, false
	}

	var f model.Form
	if err := json.Unmarshal([]byte(raw), &f); err != nil {
		s.log.Warn("discarding corrupt draft", zap.Error(err))
		return model.Form{}, false
	}
	if f.DateOfDeath == "" {
		f.DateOfDeath = s.now().Format(time.DateOnly)
	}
	return f, true
}

// Clear drops any pending autosave and removes the stored draft.
func (s *Store) Clear(ctx context.Context) error {
	s.Cancel()

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.state.Delete(ctx, repository.KeyRecordDraft); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}

// Schedule queues snapshot for a debounced write. Every call restarts the
// quiet window; only the last snapshot is written.
func (s *Store) Schedule(snapshot model.Form) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimersLocked()
	s.gen++
	gen := s.gen
	s.pending = &snapshot
	s.status = StatusSaving
	s.timer = time.AfterFunc(s.opts.Debounce, func() { s.fire(gen) })
}

// Flush writes the pending snapshot now. With nothing pending it waits for
// an autosave already in progress instead.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	if s.pending == nil {
		for s.inflight > 0 {
			s.idle.Wait()
		}
		s.mu.Unlock()
		return nil
	}
	s.stopTimersLocked()
	s.gen++
	gen := s.gen
	pending := *s.pending
	s.pending = nil
	s.inflight++
	s.mu.Unlock()
	defer s.writeDone()

	return s.write(ctx, gen, pending)
}

// Cancel drops the pending snapshot without writing it.
func (s *Store) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimersLocked()
	s.gen++
	s.pending = nil
	s.status = StatusNone
}

// Status reports the autosave indicator.
func (s *Store) Status() SaveStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Store) fire(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.pending == nil {
		s.mu.Unlock()
		return
	}
	pending := *s.pending
	s.pending = nil
	s.inflight++
	s.mu.Unlock()
	defer s.writeDone()

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := s.write(ctx, gen, pending); err != nil {
		s.log.Warn("draft autosave failed", zap.Error(err))
	}
}

func (s *Store) writeDone() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.inflight == 0 {
		s.idle.Broadcast()
	}
}

// write persists snapshot and moves the indicator to saved, then back to
// none after the status hold. A newer Schedule, Flush or Cancel wins over
// this write's status update.
func (s *Store) write(ctx context.Context, gen uint64, snapshot model.Form) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	stale := gen != s.gen
	if stale && s.pending == nil && s.inflight == 1 && s.status == StatusSaving {
		s.status = StatusNone
	}
	s.mu.Unlock()
	if stale {
		return nil
	}

	err := s.Save(ctx, snapshot)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return err
	}
	if err != nil {
		s.status = StatusNone
		return err
	}
	s.status = StatusSaved
	s.hold = time.AfterFunc(s.opts.StatusHold, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen == s.gen && s.status == StatusSaved {
			s.status = StatusNone
		}
	})
	return nil
}

func (s *Store) stopTimersLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.hold != nil {
		s.hold.Stop()
		s.hold = nil
	}
}
