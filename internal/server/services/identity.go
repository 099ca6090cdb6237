// Package services contains the server-side business logic sitting between
// the HTTP handlers and the record store.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/musicjournal/internal/common"
	"github.com/dmitrijs2005/musicjournal/internal/logging"
	"github.com/dmitrijs2005/musicjournal/internal/server/models"
)

// Identity is the profile returned by the identity provider after login.
type Identity struct {
	ID          string
	Email       string
	DisplayName string
}

// UserStore is the part of the record store identity reconciliation needs.
type UserStore interface {
	CheckUserExists(ctx context.Context, email string) (bool, error)
	AddUser(ctx context.Context, u *models.User) (string, error)
}

// IdentityService maps an external identity onto a local user row.
type IdentityService struct {
	users  UserStore
	logger logging.Logger
}

func NewIdentityService(users UserStore, logger logging.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger.With("module", "identity")}
}

// Reconcile creates the local user on first sight of id.Email and does
// nothing otherwise. Either way the identity itself is returned as a User; the
// stored row is not read back.
//
// Two concurrent first logins of the same email race between the check and
// the insert. The loser gets the duplicate error from AddUser.
func (s *IdentityService) Reconcile(ctx context.Context, id Identity) (*models.User, error) {
	if id.ID == "" || id.Email == "" {
		return nil, fmt.Errorf("%w: identity needs an id and an email", common.ErrorValidation)
	}

	exists, err := s.users.CheckUserExists(ctx, id.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking user: %w", err)
	}

	user := &models.User{UserID: id.ID, Username: id.DisplayName, Email: id.Email}
	if exists {
		return user, nil
	}

	if _, err := s.users.AddUser(ctx, user); err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	s.logger.Info(ctx, "user registered", "user_id", user.UserID)
	return user, nil
}
