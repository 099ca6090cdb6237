package spotifytokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Save(ctx context.Context, t *models.SpotifyToken) error {
	query := `
		INSERT INTO spotify_tokens (user_id, access_token, refresh_token, token_type, expiry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			expiry = EXCLUDED.expiry
	`
	_, err := r.db.ExecContext(ctx, query,
		t.UserID, t.AccessToken, optional(t.RefreshToken), t.TokenType, t.Expiry.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *PostgresRepository) Find(ctx context.Context, userID string) (*models.SpotifyToken, error) {
	query := `
		SELECT user_id, access_token, refresh_token, token_type, expiry
		FROM spotify_tokens
		WHERE user_id = $1
	`
	var (
		t       models.SpotifyToken
		refresh sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&t.UserID, &t.AccessToken, &refresh, &t.TokenType, &t.Expiry)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	t.RefreshToken = refresh.String
	return &t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string) error {
	query := `
		DELETE FROM spotify_tokens
		WHERE user_id = $1
	`
	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
