package store

import (
	"context"
	"errors"

	"deskbook/internal/model"
)

var (
	ErrNotFound = errors.New("not_found")
	ErrConflict = errors.New("conflict")
)

// Store is the persistence collaborator for users and connection entries.
// Every method is a single atomic read or write; implementations serialize
// overlapping writes themselves.
type Store interface {
	CreateUser(ctx context.Context, u model.User) (model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error

	CreateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error)
	GetEntry(ctx context.Context, id int64) (*model.ConnectionEntry, error)
	ListEntries(ctx context.Context) ([]model.ConnectionEntry, error)
	UpdateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error)
	DeleteEntry(ctx context.Context, id int64) error

	Close()
}
