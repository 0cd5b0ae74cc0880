// Package bootstrap builds the collaborators shared by the console service
// and the operator CLI from configuration.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"burialdesk/internal/apiclient"
	"burialdesk/internal/config"
	"burialdesk/internal/database"
	"burialdesk/internal/database/migration"
	"burialdesk/internal/repository"
	"burialdesk/internal/repository/memory"
	"burialdesk/internal/repository/sqlstate"
	"burialdesk/internal/storage"
)

// Local store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Upload modes.
const (
	UploadPresigned = "presigned"
	UploadMinIO     = "minio"
)

var (
	newPostgres = database.NewPostgres
	newSQLite   = database.NewSQLite
)

// State is an opened local state store. Close releases the underlying
// database, if any.
type State struct {
	repository.StateRepository
	db *sql.DB
}

// Close closes the database behind the store.
func (s *State) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenState opens the configured local state store and creates its table
// when missing.
func OpenState(ctx context.Context, cfg config.LocalStoreConfig, dbCfg config.DatabaseConfig, log *zap.Logger) (*State, error) {
	var (
		db      *sql.DB
		dialect database.Dialect
		err     error
	)

	switch cfg.Driver {
	case DriverMemory:
		log.Info("local state in memory")
		return &State{StateRepository: memory.New()}, nil
	case DriverSQLite, "":
		db, err = newSQLite(cfg.Path)
		dialect = database.DialectSQLite
	case DriverPostgres:
		db, err = newPostgres(dbCfg)
		dialect = database.DialectPostgres
	default:
		return nil, fmt.Errorf("unknown local store driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	if err := migration.EnsureMigrated(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Info("local state opened", zap.String("driver", string(dialect)))
	return &State{StateRepository: sqlstate.New(db, dialect), db: db}, nil
}

// NewUploader returns the attachment uploader for the configured mode.
func NewUploader(cfg *config.AppConfig, api *apiclient.Client, log *zap.Logger) (storage.Uploader, error) {
	switch cfg.Upload.Mode {
	case UploadPresigned, "":
		return storage.NewPresigned(api, cfg.Upload.Folder, cfg.API.Timeout, log), nil
	case UploadMinIO:
		return storage.NewMinIO(cfg.MinIO, cfg.Upload.Folder)
	default:
		return nil, fmt.Errorf("unknown upload mode %q", cfg.Upload.Mode)
	}
}
