package sqlstate

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"burialdesk/internal/database"
	"burialdesk/internal/repository"
)

// StateSQL is a database/sql implementation of repository.StateRepository
// over the local_state table. It works on PostgreSQL and SQLite.
type StateSQL struct {
	db      *sql.DB
	dialect database.Dialect
}

// New creates a StateSQL repository. The table is created by migration.EnsureMigrated.
func New(db *sql.DB, dialect database.Dialect) *StateSQL {
	return &StateSQL{db: db, dialect: dialect}
}

var _ repository.StateRepository = (*StateSQL)(nil)

// rebind rewrites $n placeholders to ? for SQLite.
func (r *StateSQL) rebind(q string) string {
	if r.dialect != database.DialectSQLite {
		return q
	}
	for _, p := range []string{"$1", "$2"} {
		q = strings.ReplaceAll(q, p, "?")
	}
	return q
}

// Get returns the stored value for key.
func (r *StateSQL) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM local_state WHERE key = $1`
	var value string
	if err := r.db.QueryRowContext(ctx, r.rebind(q), key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", repository.ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Put upserts the value for key.
func (r *StateSQL) Put(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO local_state (key, value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, r.rebind(q), key, value)
	return err
}

// Delete removes key; missing keys are ignored.
func (r *StateSQL) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM local_state WHERE key = $1`
	_, err := r.db.ExecContext(ctx, r.rebind(q), key)
	return err
}

// Ping checks database connectivity.
func (r *StateSQL) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
