package memory

import (
	"context"
	"sync"

	"burialdesk/internal/repository"
)

// StateMemory keeps local state in process memory. Values are lost on exit.
type StateMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

// New creates an empty in-memory state repository.
func New() *StateMemory {
	return &StateMemory{values: make(map[string]string)}
}

var _ repository.StateRepository = (*StateMemory)(nil)

func (m *StateMemory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", repository.ErrNotFound
	}
	return v, nil
}

func (m *StateMemory) Put(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *StateMemory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *StateMemory) Ping(context.Context) error { return nil }
