package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deskbook/internal/model"
	"deskbook/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// Credentials persists users and verifies their passwords against salted
// bcrypt hashes.
type Credentials struct {
	store store.Store
	cost  int
}

func NewCredentials(st store.Store, cost int) *Credentials {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{store: st, cost: cost}
}

// Verify returns the user only if the password matches. An unknown username
// and a wrong password are indistinguishable to the caller.
func (c *Credentials) Verify(ctx context.Context, username, password string) (*model.User, error) {
	u, err := c.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (c *Credentials) Create(ctx context.Context, username, password string, isAdmin bool) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, ErrInvalidInput
	}

	if _, err := c.store.GetUserByUsername(ctx, username); err == nil {
		return model.User{}, ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return model.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	u, err := c.store.CreateUser(ctx, model.User{
		Username:     username,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	})
	if err != nil {
		// Lost a race with a concurrent create.
		if errors.Is(err, store.ErrConflict) {
			return model.User{}, fmt.Errorf("%w: %w", ErrDuplicateUsername, err)
		}
		return model.User{}, err
	}
	return u, nil
}

func (c *Credentials) Get(ctx context.Context, id int64) (*model.User, error) {
	return c.store.GetUserByID(ctx, id)
}

func (c *Credentials) List(ctx context.Context) ([]model.User, error) {
	return c.store.ListUsers(ctx)
}

// Delete removes the user. The self-delete rule is enforced by the caller.
func (c *Credentials) Delete(ctx context.Context, id int64) error {
	return c.store.DeleteUser(ctx, id)
}

// EnsureAdmin creates an administrator with the given credentials unless a
// user with that username already exists. It reports whether it created one.
func (c *Credentials) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	_, err := c.Create(ctx, username, password, true)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrDuplicateUsername):
		return false, nil
	default:
		return false, err
	}
}
