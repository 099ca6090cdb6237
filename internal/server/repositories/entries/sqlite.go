package entries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/timex"
)

// SQLiteRepository keeps timestamps as fixed-width UTC text and relies on
// rowid for insertion order.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const sqliteColumns = `entry_id, user_id, track_id, journal_cover, entry_title, entry_text, image_url, created_at, updated_at`

func (r *SQLiteRepository) Create(ctx context.Context, e *models.JournalEntry) error {
	query := `INSERT INTO journal_entries (` + sqliteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		e.EntryID, e.UserID, e.TrackID, e.JournalCover, e.EntryTitle, e.EntryText, e.ImageURL,
		timex.FormatTimestamp(e.CreatedAt), timex.FormatTimestamp(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *SQLiteRepository) ListByTrack(ctx context.Context, trackID, userID string) ([]models.JournalEntry, error) {
	query := `SELECT ` + sqliteColumns + ` FROM journal_entries
		WHERE track_id = ? AND user_id = ?
		ORDER BY rowid`
	return r.list(ctx, query, trackID, userID)
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string, order Order) ([]models.JournalEntry, error) {
	query := `SELECT ` + sqliteColumns + ` FROM journal_entries
		WHERE user_id = ?
		ORDER BY ` + sqliteOrder(order)
	return r.list(ctx, query, userID)
}

func sqliteOrder(o Order) string {
	switch o {
	case OrderCreatedDesc:
		return "created_at DESC, rowid DESC"
	case OrderUpdatedDesc:
		return "updated_at DESC, rowid DESC"
	default:
		return "rowid"
	}
}

func (r *SQLiteRepository) Update(ctx context.Context, entryID, userID string, changes []Change, updatedAt time.Time) error {
	set, args, err := buildSet(changes, timex.FormatTimestamp(updatedAt), func(int) string { return "?" })
	if err != nil {
		return err
	}

	query := `UPDATE journal_entries SET ` + set + ` WHERE entry_id = ? AND user_id = ?`
	args = append(args, entryID, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res)
}

func (r *SQLiteRepository) Delete(ctx context.Context, entryID, userID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res)
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.JournalEntry, 0)
	for rows.Next() {
		var (
			e                models.JournalEntry
			cover, image     sql.NullString
			created, updated string
		)
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.TrackID, &cover, &e.EntryTitle, &e.EntryText, &image, &created, &updated); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		if e.CreatedAt, err = timex.ParseTimestamp(created); err != nil {
			return nil, fmt.Errorf("entry %s: created_at: %w", e.EntryID, err)
		}
		if e.UpdatedAt, err = timex.ParseTimestamp(updated); err != nil {
			return nil, fmt.Errorf("entry %s: updated_at: %w", e.EntryID, err)
		}
		e.JournalCover = nullable(cover)
		e.ImageURL = nullable(image)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrEntryNotFound
	}
	return nil
}
