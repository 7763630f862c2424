package auth

import (
	"context"
	"testing"

	"deskbook/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestCredentials(t *testing.T) (*Credentials, *memory.Store) {
	t.Helper()
	st := memory.NewStore()
	return NewCredentials(st, bcrypt.MinCost), st
}

func TestCredentials_CreateAndVerify(t *testing.T) {
	creds, st := newTestCredentials(t)
	ctx := context.Background()

	u, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)
	assert.NotEqual(t, "x", u.PasswordHash)
	assert.False(t, u.IsAdmin)

	got, err := creds.Verify(ctx, "bob", "x")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = creds.Verify(ctx, "bob", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = creds.Verify(ctx, "nobody", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	users, err := st.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestCredentials_HashesAreSalted(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()

	a, err := creds.Create(ctx, "a", "same", false)
	require.NoError(t, err)
	b, err := creds.Create(ctx, "b", "same", false)
	require.NoError(t, err)
	assert.NotEqual(t, a.PasswordHash, b.PasswordHash)
}

func TestCredentials_DuplicateLeavesStoreUnchanged(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()

	orig, err := creds.Create(ctx, "alice", "first", true)
	require.NoError(t, err)

	_, err = creds.Create(ctx, "alice", "second", false)
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	users, err := creds.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, orig, users[0])

	_, err = creds.Verify(ctx, "alice", "first")
	assert.NoError(t, err)
}

func TestCredentials_CreateRequiresFields(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()

	_, err := creds.Create(ctx, "  ", "pw", false)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = creds.Create(ctx, "carol", "", false)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCredentials_EnsureAdmin(t *testing.T) {
	creds, _ := newTestCredentials(t)
	ctx := context.Background()

	created, err := creds.EnsureAdmin(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = creds.EnsureAdmin(ctx, "admin", "other")
	require.NoError(t, err)
	assert.False(t, created)

	users, err := creds.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
	assert.True(t, users[0].IsAdmin)

	_, err = creds.Verify(ctx, "admin", "admin")
	assert.NoError(t, err)
}
