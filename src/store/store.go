// Package store owns the database handle. Callers open it once, pass it to
// the services that need it and close it on shutdown.
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/theleywin/masheel-api/src/lib"
)

type Store struct {
	db *gorm.DB
}

// Option tweaks the gorm configuration before the connection is opened.
type Option func(*gorm.Config)

// WithLogLevel sets the gorm SQL logger verbosity.
func WithLogLevel(level logger.LogLevel) Option {
	return func(c *gorm.Config) {
		c.Logger = logger.Default.LogMode(level)
	}
}

// Open connects to the database selected by cfg.DBDriver
func Open(cfg *lib.Config, opts ...Option) (*Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		return OpenSQLite(cfg.DBPath, opts...)
	case "postgres":
		return OpenPostgres(cfg.DatabaseURL, opts...)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

// OpenSQLite opens a SQLite database at path. SQLite allows a single writer,
// so the pool is pinned to one connection; this also keeps ":memory:"
// databases alive for the lifetime of the store.
func OpenSQLite(path string, opts ...Option) (*Store, error) {
	s, err := open(sqlite.Open(path), opts...)
	if err != nil {
		return nil, err
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return s, nil
}

// OpenPostgres opens a PostgreSQL database from a DSN or URL.
func OpenPostgres(dsn string, opts ...Option) (*Store, error) {
	return open(postgres.Open(dsn), opts...)
}

func open(dialector gorm.Dialector, opts ...Option) (*Store, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// New wraps an already opened gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Transaction runs fn inside one database transaction. Every store call made
// through tx joins it; returning an error rolls everything back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		return fn(&Store{db: gtx})
	})
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// storageErr keeps errors that already carry a kind and wraps the rest.
func storageErr(message string, err error) error {
	var e *lib.Error
	if errors.As(err, &e) {
		return err
	}
	return lib.StorageFailure(message, err)
}
