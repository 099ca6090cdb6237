// Package store is the record store of the journal server. It owns the
// database handle and passes every sensitive field through the crypto
// envelope, so callers only ever see plaintext and the database only ever
// sees ciphertext.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/cryptox"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/repositories/repomanager"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

const sqlitePragmas = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

type Store struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	env    cryptox.Envelope
	logger logging.Logger
}

// New wraps an already migrated database. The store takes ownership of db
// and closes it in Close.
func New(db *sql.DB, rm repomanager.RepositoryManager, env cryptox.Envelope, logger logging.Logger) *Store {
	return &Store{
		db:     db,
		rm:     rm,
		env:    env,
		logger: logger.With("module", "store"),
	}
}

// Open connects to dsn, runs the migrations and returns a ready store. A DSN
// starting with postgres:// or postgresql:// selects PostgreSQL; anything
// else is treated as a SQLite path (or :memory:) and gets foreign key
// enforcement switched on. Every failure matches common.ErrStorageUnavailable.
func Open(ctx context.Context, dsn string, key []byte, logger logging.Logger) (*Store, error) {
	env, err := cryptox.NewEnvelope(key)
	if err != nil {
		return nil, err
	}

	driver, rm, source := resolve(dsn)

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: migrations: %w", common.ErrStorageUnavailable, err)
	}

	s := New(db, rm, env, logger)
	s.logger.Info(ctx, "storage opened", "driver", driver)
	return s, nil
}

func resolve(dsn string) (string, repomanager.RepositoryManager, string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", repomanager.NewPostgresRepositoryManager(), dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return "sqlite", repomanager.NewSQLiteRepositoryManager(), dsn + sep + sqlitePragmas
}

// Close releases the database handle and wipes the key. The store must not
// be used afterwards.
func (s *Store) Close() error {
	s.env.Wipe()
	return s.db.Close()
}

// Ping reports whether the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}
	return nil
}

func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// notFound reports whether err is a plain miss.
func notFound(err error) bool {
	return errors.Is(err, common.ErrorNotFound)
}
