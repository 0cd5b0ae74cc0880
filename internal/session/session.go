package session

import (
	"context"
	"errors"

	"burialdesk/internal/repository"
)

// Store persists the API session token under the well-known "token" key.
type Store struct {
	state repository.StateRepository
}

// NewStore wraps a state repository.
func NewStore(state repository.StateRepository) *Store {
	return &Store{state: state}
}

// Token returns the stored token, or "" when the operator is logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	tok, err := s.state.Get(ctx, repository.KeyToken)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return tok, err
}

// SetToken replaces the stored token.
func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.state.Put(ctx, repository.KeyToken, token)
}

// Clear removes the stored token.
func (s *Store) Clear(ctx context.Context) error {
	return s.state.Delete(ctx, repository.KeyToken)
}
