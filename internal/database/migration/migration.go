package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"burialdesk/internal/database"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = map[database.Dialect][]migrationStep{
	database.DialectPostgres: {
		{
			Name: "create_table_local_state",
			SQL: `CREATE TABLE IF NOT EXISTS local_state (
  key        TEXT        PRIMARY KEY,
  value      TEXT        NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		},
	},
	database.DialectSQLite: {
		{
			Name: "create_table_local_state",
			SQL: `CREATE TABLE IF NOT EXISTS local_state (
  key        TEXT     PRIMARY KEY,
  value      TEXT     NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`,
		},
	},
}

var sentinelQueries = map[database.Dialect]string{
	database.DialectPostgres: `SELECT to_regclass('public.local_state') IS NOT NULL`,
	database.DialectSQLite:   `SELECT COUNT(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'local_state'`,
}

// EnsureMigrated creates the local_state table when it does not exist yet.
func EnsureMigrated(ctx context.Context, db *sql.DB, dialect database.Dialect, log *zap.Logger) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("dialect", string(dialect)))

	query, ok := sentinelQueries[dialect]
	if !ok {
		return fmt.Errorf("unsupported dialect: %s", dialect)
	}

	var exists bool
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Error("db_migration_failed",
			zap.Error(err),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Info("db_migration_skip", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
		return nil
	}

	log.Info("db_migration_start")
	for _, step := range steps[dialect] {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Info("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	log.Info("db_migration_success", zap.Int64("duration_ms", time.Since(start).Milliseconds()))
	return nil
}
