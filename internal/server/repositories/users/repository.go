// Package users stores journal owners. Rows are created on first login and
// are never updated or deleted.
package users

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

type Repository interface {
	// Create inserts user. A taken email or id yields an error matching
	// common.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID returns common.ErrorNotFound when no user has that id.
	GetByID(ctx context.Context, userID string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
