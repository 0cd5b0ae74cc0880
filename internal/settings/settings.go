// Package settings caches the operator's preferences and formats dates
// the way they asked for.
package settings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"burialdesk/internal/model"
)

// Supported date formats.
const (
	FormatDayFirst   = "DD/MM/YYYY"
	FormatMonthFirst = "MM/DD/YYYY"
	FormatISO        = "YYYY-MM-DD"
)

// API reads and writes the stored preferences.
type API interface {
	GetSettings(ctx context.Context) (*model.Settings, error)
	UpdateSettings(ctx context.Context, s model.Settings) (string, error)
}

// TokenSource reports whether an operator is logged in.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Service holds the current settings. Until Reload succeeds the defaults apply.
type Service struct {
	api    API
	tokens TokenSource
	log    *zap.Logger

	mu      sync.RWMutex
	current model.Settings
}

// NewService creates a Service seeded with model.DefaultSettings.
func NewService(api API, tokens TokenSource, log *zap.Logger) *Service {
	return &Service{api: api, tokens: tokens, log: log, current: model.DefaultSettings()}
}

// Reload fetches settings from the API. Without a session nothing is fetched.
// A failed fetch keeps the previous values and is only logged.
func (s *Service) Reload(ctx context.Context) model.Settings {
	tok, err := s.tokens.Token(ctx)
	if err != nil || tok == "" {
		return s.Current()
	}

	got, err := s.api.GetSettings(ctx)
	if err != nil {
		s.log.Warn("settings load failed, keeping current values", zap.Error(err))
		return s.Current()
	}

	s.mu.Lock()
	s.current = *got
	s.mu.Unlock()
	return *got
}

// Update stores new settings remotely and then locally. It returns the API message.
func (s *Service) Update(ctx context.Context, next model.Settings) (string, error) {
	msg, err := s.api.UpdateSettings(ctx, next)
	if err != nil {
		return "", fmt.Errorf("update settings: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
	return msg, nil
}

// Current returns the cached settings.
func (s *Service) Current() model.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AutoSave reports whether draft autosave is enabled.
func (s *Service) AutoSave() bool {
	return s.Current().AutoSave
}

// FormatDate renders t using the cached date format.
func (s *Service) FormatDate(t time.Time) string {
	return FormatDate(t, s.Current().DateFormat)
}

// FormatDate renders t in one of the supported formats; unknown formats
// fall back to DD/MM/YYYY. The zero time renders as "".
func FormatDate(t time.Time, format string) string {
	if t.IsZero() {
		return ""
	}
	switch format {
	case FormatMonthFirst:
		return t.Format("01/02/2006")
	case FormatISO:
		return t.Format(time.DateOnly)
	default:
		return t.Format("02/01/2006")
	}
}

// ParseAPIDate parses the date strings the API sends (RFC 3339 or plain
// YYYY-MM-DD). Blank input yields the zero time.
func ParseAPIDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", v, err)
	}
	return t, nil
}
