// Package storage opens the durable slot store selected by configuration
// and applies its schema.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/rbacdash/internal/dbx"
	"github.com/dmitrijs2005/rbacdash/internal/filex"
	"github.com/dmitrijs2005/rbacdash/internal/storage/kv"
	"github.com/dmitrijs2005/rbacdash/internal/storage/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// Storage owns the database handle (if any) and the slot repository on top
// of it.
type Storage struct {
	driver string
	db     *sql.DB
	slots  kv.Repository
}

// Open connects to the selected backend and runs migrations.
func Open(ctx context.Context, driver, dsn string) (*Storage, error) {
	switch driver {
	case DriverMemory:
		return &Storage{driver: driver, slots: kv.NewMemoryRepository()}, nil

	case DriverSQLite:
		if err := filex.EnsureParentDir(dsn); err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		db, err := sql.Open("sqlite", dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		// one writer at a time; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
		if err := RunMigrations(ctx, db, "sqlite3", "sqlite"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		return &Storage{driver: driver, db: db, slots: kv.NewSQLiteRepository(db)}, nil

	case DriverPostgres:
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("db open error: %w", err)
		}
		if err := RunMigrations(ctx, db, "postgres", "postgres"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration error: %w", err)
		}
		return &Storage{driver: driver, db: db, slots: kv.NewPostgresRepository(db)}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
}

// RunMigrations applies the embedded migrations found in dir using the
// given goose dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, dir)
}

// Slots returns the key/value repository.
func (s *Storage) Slots() kv.Repository {
	return s.slots
}

// Driver reports the backend in use.
func (s *Storage) Driver() string {
	return s.driver
}

// Reset removes the given slots in one transaction. Without keys every
// slot is removed.
func (s *Storage) Reset(ctx context.Context, keys ...string) error {
	if s.db == nil {
		if len(keys) == 0 {
			return s.slots.Clear(ctx)
		}
		for _, k := range keys {
			if err := s.slots.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)
		if len(keys) == 0 {
			return repo.Clear(ctx)
		}
		for _, k := range keys {
			if err := repo.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Storage) repoFor(tx dbx.DBTX) kv.Repository {
	if s.driver == DriverPostgres {
		return kv.NewPostgresRepository(tx)
	}
	return kv.NewSQLiteRepository(tx)
}

// Close releases the database handle.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
