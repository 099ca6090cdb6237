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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, t *models.Track) error {
	query :=
		`INSERT INTO tracks (spotify_track_id, track_title, artist, album)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (spotify_track_id) DO NOTHING
		 `
	if _, err := r.db.ExecContext(ctx, query, t.SpotifyTrackID, t.TrackTitle, t.Artist, t.Album); err != nil {
		return fmt.Errorf("db error: %w", dbx.ClassifyError(err))
	}
	return nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, trackID string) (*models.Track, error) {
	query :=
		`SELECT spotify_track_id, track_title, artist, album FROM tracks
		 WHERE spotify_track_id = $1
		 `

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
