package memory

import (
	"context"
	"strings"
	"testing"

	"deskbook/internal/model"
	"deskbook/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, model.User{Username: " alice ", PasswordHash: "h", IsAdmin: true})
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "alice", u.Username)
	assert.True(t, u.IsAdmin)
	assert.NotZero(t, u.CreatedAt)

	// Duplicate username
	_, err = s.CreateUser(ctx, model.User{Username: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, store.ErrConflict)

	// Usernames are case-sensitive
	bob, err := s.CreateUser(ctx, model.User{Username: "Alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bob.ID)

	// Missing username
	_, err = s.CreateUser(ctx, model.User{Username: "  "})
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "username_required"))

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestGetUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, model.User{Username: "carol", PasswordHash: "h"})
	require.NoError(t, err)

	byID, err := s.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "carol", byID.Username)

	byName, err := s.GetUserByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = s.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetUserByUsername(ctx, "CAROL")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUser(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u1, _ := s.CreateUser(ctx, model.User{Username: "u1", PasswordHash: "h"})
	u2, _ := s.CreateUser(ctx, model.User{Username: "u2", PasswordHash: "h"})

	require.NoError(t, s.DeleteUser(ctx, u1.ID))
	assert.ErrorIs(t, s.DeleteUser(ctx, u1.ID), store.ErrNotFound)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u2.ID, users[0].ID)

	// Ids are not reused after a delete
	u3, err := s.CreateUser(ctx, model.User{Username: "u3", PasswordHash: "h"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u3.ID)
}

func TestEntryLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	e, err := s.CreateEntry(ctx, model.ConnectionEntry{Name: "Server1", RemoteID: "123 456 789", RemotePassword: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.NotZero(t, e.CreatedAt)

	// Duplicates are allowed
	dup, err := s.CreateEntry(ctx, model.ConnectionEntry{Name: "Server1", RemoteID: "123 456 789", RemotePassword: "pw1"})
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, dup.ID)

	updated, err := s.UpdateEntry(ctx, model.ConnectionEntry{ID: e.ID, Name: "Server1", RemoteID: "999 888 777", RemotePassword: "pw2"})
	require.NoError(t, err)
	assert.Equal(t, e.ID, updated.ID)
	assert.Equal(t, "999 888 777", updated.RemoteID)
	assert.Equal(t, "pw2", updated.RemotePassword)
	assert.Equal(t, e.CreatedAt, updated.CreatedAt)

	got, err := s.GetEntry(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, *got)

	_, err = s.UpdateEntry(ctx, model.ConnectionEntry{ID: 42, Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.DeleteEntry(ctx, dup.ID))
	assert.ErrorIs(t, s.DeleteEntry(ctx, dup.ID), store.ErrNotFound)

	entries, err := s.ListEntries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, updated, entries[0])

	_, err = s.GetEntry(ctx, dup.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
