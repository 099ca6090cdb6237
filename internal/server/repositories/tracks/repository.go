// Package tracks stores song metadata shared by all users.
package tracks

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

type Repository interface {
	// Create inserts track unless a row with the same id already exists, in
	// which case the stored row is left as it was.
	Create(ctx context.Context, track *models.Track) error
	// GetByID returns common.ErrorNotFound for an unknown id.
	GetByID(ctx context.Context, trackID string) (*models.Track, error)
}
