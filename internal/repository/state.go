package repository

import (
	"context"
	"errors"
)

// Well-known keys of the local state store.
const (
	KeyToken       = "token"
	KeyRecordDraft = "recordDraft"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = errors.New("state key not found")

// StateRepository is the console's equivalent of browser local storage:
// a flat string key/value store. Implementations live in subpackages.
type StateRepository interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
