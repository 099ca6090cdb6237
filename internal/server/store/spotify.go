package store

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// SaveSpotifyToken stores t with both token strings encrypted, replacing any
// previous token of the same user. An empty refresh token is kept empty.
func (s *Store) SaveSpotifyToken(ctx context.Context, t *models.SpotifyToken) error {
	sealed := *t

	var err error
	if sealed.AccessToken, err = s.env.Seal(t.AccessToken); err != nil {
		return err
	}
	if t.RefreshToken != "" {
		if sealed.RefreshToken, err = s.env.Seal(t.RefreshToken); err != nil {
			return err
		}
	}

	return s.rm.SpotifyTokens(s.db).Save(ctx, &sealed)
}

// GetSpotifyToken returns common.ErrorNotFound when the user never logged in
// through Spotify.
func (s *Store) GetSpotifyToken(ctx context.Context, userID string) (*models.SpotifyToken, error) {
	t, err := s.rm.SpotifyTokens(s.db).Find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if t.AccessToken, err = s.env.Open(t.AccessToken); err != nil {
		return nil, err
	}
	if t.RefreshToken != "" {
		if t.RefreshToken, err = s.env.Open(t.RefreshToken); err != nil {
			return nil, err
		}
	}
	return t, nil
}
