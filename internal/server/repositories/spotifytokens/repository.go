// Package spotifytokens stores the Spotify OAuth tokens obtained at login,
// one row per user. Token columns hold envelope ciphertext.
package spotifytokens

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

type Repository interface {
	// Save inserts or replaces the token row of token.UserID.
	Save(ctx context.Context, token *models.SpotifyToken) error
	// Find returns common.ErrorNotFound when the user has no stored token.
	Find(ctx context.Context, userID string) (*models.SpotifyToken, error)
	Delete(ctx context.Context, userID string) error
}
