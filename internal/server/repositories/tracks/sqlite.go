package tracks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/dbx"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, t *models.Track) error {
	query := `INSERT OR IGNORE INTO tracks (spotify_track_id, track_title, artist, album) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, t.SpotifyTrackID, t.TrackTitle, t.Artist, t.Album); err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, trackID string) (*models.Track, error) {
	query := `SELECT spotify_track_id, track_title, artist, album FROM tracks WHERE spotify_track_id = ?`

	t := &models.Track{}
	err := r.db.QueryRowContext(ctx, query, trackID).Scan(&t.SpotifyTrackID, &t.TrackTitle, &t.Artist, &t.Album)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return t, nil
}
