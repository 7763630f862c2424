package services

import (
	"context"
	"errors"

	"deskbook/internal/auth"
	"deskbook/internal/model"
)

var ErrSelfDeleteForbidden = errors.New("cannot delete own user")

// Users is the user administration service. Every operation takes the acting
// user and is refused unless that user is an administrator.
type Users struct {
	creds *auth.Credentials
}

func NewUsers(creds *auth.Credentials) *Users {
	return &Users{creds: creds}
}

func (s *Users) ListUsers(ctx context.Context, actor *model.User) ([]model.User, error) {
	if err := auth.Authorize(actor); err != nil {
		return nil, err
	}
	return s.creds.List(ctx)
}

func (s *Users) AddUser(ctx context.Context, actor *model.User, username, password string, isAdmin bool) (model.User, error) {
	if err := auth.Authorize(actor); err != nil {
		return model.User{}, err
	}
	return s.creds.Create(ctx, username, password, isAdmin)
}

// RemoveUser deletes the user with the given id. Deleting the acting user is
// refused before anything else, whatever the actor's role.
func (s *Users) RemoveUser(ctx context.Context, actor *model.User, id int64) error {
	if actor != nil && actor.ID == id {
		return ErrSelfDeleteForbidden
	}
	if err := auth.Authorize(actor); err != nil {
		return err
	}
	return s.creds.Delete(ctx, id)
}
