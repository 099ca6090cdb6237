package entries

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// PostgresRepository orders by the seq column for insertion order.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const postgresColumns = `entry_id, user_id, track_id, journal_cover, entry_title, entry_text, image_url, created_at, updated_at`

func pgPlaceholder(i int) string { return "$" + strconv.Itoa(i) }

func (r *PostgresRepository) Create(ctx context.Context, e *models.JournalEntry) error {
	query :=
		`INSERT INTO journal_entries (` + postgresColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 `

	_, err := r.db.ExecContext(ctx, query,
		e.EntryID, e.UserID, e.TrackID, e.JournalCover, e.EntryTitle, e.EntryText, e.ImageURL,
		e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *PostgresRepository) ListByTrack(ctx context.Context, trackID, userID string) ([]models.JournalEntry, error) {
	query :=
		`SELECT ` + postgresColumns + ` FROM journal_entries
		 WHERE track_id = $1 AND user_id = $2
		 ORDER BY seq
		 `
	return r.list(ctx, query, trackID, userID)
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, order Order) ([]models.JournalEntry, error) {
	query :=
		`SELECT ` + postgresColumns + ` FROM journal_entries
		 WHERE user_id = $1
		 ORDER BY ` + postgresOrder(order) + `
		 `
	return r.list(ctx, query, userID)
}

func postgresOrder(o Order) string {
	switch o {
	case OrderCreatedDesc:
		return "created_at DESC, seq DESC"
	case OrderUpdatedDesc:
		return "updated_at DESC, seq DESC"
	default:
		return "seq"
	}
}

func (r *PostgresRepository) Update(ctx context.Context, entryID, userID string, changes []Change, updatedAt time.Time) error {
	set, args, err := buildSet(changes, updatedAt.UTC(), pgPlaceholder)
	if err != nil {
		return err
	}

	n := len(args)
	query := `UPDATE journal_entries SET ` + set +
		` WHERE entry_id = ` + pgPlaceholder(n+1) + ` AND user_id = ` + pgPlaceholder(n+2)
	args = append(args, entryID, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, entryID, userID string) error {
	query :=
		`DELETE FROM journal_entries
		 WHERE entry_id = $1 AND user_id = $2
		 `
	res, err := r.db.ExecContext(ctx, query, entryID, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectAffected(res)
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]models.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.JournalEntry, 0)
	for rows.Next() {
		var (
			e            models.JournalEntry
			cover, image sql.NullString
		)
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.TrackID, &cover, &e.EntryTitle, &e.EntryText, &image, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
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
