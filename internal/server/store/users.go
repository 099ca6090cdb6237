package store

import (
	"context"

	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// AddUser stores u and returns its id. A taken email or id matches
// common.ErrDuplicate.
func (s *Store) AddUser(ctx context.Context, u *models.User) (string, error) {
	if err := s.rm.Users(s.db).Create(ctx, u); err != nil {
		return "", err
	}
	s.logger.Info(ctx, "user added", "user_id", u.UserID)
	return u.UserID, nil
}

// GetUserByExternalID returns (nil, nil) when no user has that id.
func (s *Store) GetUserByExternalID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.rm.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (s *Store) CheckUserExists(ctx context.Context, email string) (bool, error) {
	return s.rm.Users(s.db).ExistsByEmail(ctx, email)
}
