package store

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// AddTrack stores t unless the id is already known and returns the id either way.
func (s *Store) AddTrack(ctx context.Context, t *models.Track) (string, error) {
	if err := s.rm.Tracks(s.db).Create(ctx, t); err != nil {
		return "", err
	}
	return t.SpotifyTrackID, nil
}

// GetTrack returns common.ErrorNotFound for an unknown id.
func (s *Store) GetTrack(ctx context.Context, id string) (*models.Track, error) {
	return s.rm.Tracks(s.db).GetByID(ctx, id)
}
