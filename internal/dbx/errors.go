package dbx

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Postgres SQLSTATE codes for integrity violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ConstraintError reports an integrity violation detected by the engine.
// Error returns the engine's own message; errors.Is matches Kind, which is
// either common.ErrDuplicate or common.ErrForeignKey.
type ConstraintError struct {
	Kind error
	Err  error
}

func (e *ConstraintError) Error() string { return e.Err.Error() }

func (e *ConstraintError) Unwrap() []error { return []error{e.Kind, e.Err} }

// ClassifyError converts uniqueness and foreign key violations from SQLite or
// Postgres into a *ConstraintError. Any other error is returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	if kind := constraintKind(err); kind != nil {
		return &ConstraintError{Kind: kind, Err: err}
	}
	return err
}

func constraintKind(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return common.ErrDuplicate
		case pgForeignKeyViolation:
			return common.ErrForeignKey
		}
		return nil
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return common.ErrDuplicate
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return common.ErrForeignKey
		}
		// primary result code only, fall back to the message
		if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			msg := liteErr.Error()
			switch {
			case strings.Contains(msg, "UNIQUE"):
				return common.ErrDuplicate
			case strings.Contains(msg, "FOREIGN KEY"):
				return common.ErrForeignKey
			}
		}
	}
	return nil
}
