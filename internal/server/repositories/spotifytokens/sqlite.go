package spotifytokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
	"github.com/dmitrijs2005/musicjournal/internal/timex"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Save(ctx context.Context, t *models.SpotifyToken) error {
	query := `INSERT INTO spotify_tokens (user_id, access_token, refresh_token, token_type, expiry)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type,
			expiry = excluded.expiry`

	_, err := r.db.ExecContext(ctx, query,
		t.UserID, t.AccessToken, optional(t.RefreshToken), t.TokenType, timex.FormatTimestamp(t.Expiry))
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *SQLiteRepository) Find(ctx context.Context, userID string) (*models.SpotifyToken, error) {
	query := `SELECT user_id, access_token, refresh_token, token_type, expiry FROM spotify_tokens WHERE user_id = ?`

	var (
		t       models.SpotifyToken
		refresh sql.NullString
		expiry  string
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.UserID, &t.AccessToken, &refresh, &t.TokenType, &expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if t.Expiry, err = timex.ParseTimestamp(expiry); err != nil {
		return nil, fmt.Errorf("spotify token %s: expiry: %w", userID, err)
	}
	t.RefreshToken = refresh.String
	return &t, nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM spotify_tokens WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// optional stores an empty string as NULL.
func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
