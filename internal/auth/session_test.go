package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *Credentials, *MemoryRegistry) {
	t.Helper()
	creds, _ := newTestCredentials(t)
	reg := NewMemoryRegistry()
	return NewManager(creds, reg, []byte("0123456789abcdef0123456789abcdef"), time.Hour), creds, reg
}

func TestManager_LoginResolvesUser(t *testing.T) {
	m, creds, reg := newTestManager(t)
	ctx := context.Background()

	bob, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)

	sess, u, err := m.Login(ctx, "bob", "x")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, u.ID)
	assert.Equal(t, bob.ID, sess.UserID)
	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.Token)
	assert.Equal(t, 1, reg.Len())

	cur, err := m.CurrentUser(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, "bob", cur.Username)
}

func TestManager_LoginFailureIsGeneric(t *testing.T) {
	m, creds, reg := newTestManager(t)
	ctx := context.Background()

	_, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)

	_, _, err = m.Login(ctx, "bob", "y")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = m.Login(ctx, "ghost", "x")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.Equal(t, 0, reg.Len())
}

func TestManager_LogoutInvalidatesToken(t *testing.T) {
	m, creds, reg := newTestManager(t)
	ctx := context.Background()

	_, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)
	sess, _, err := m.Login(ctx, "bob", "x")
	require.NoError(t, err)

	require.NoError(t, m.Logout(ctx, sess.Token))
	assert.Equal(t, 0, reg.Len())

	_, err = m.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)

	// Garbage tokens are ignored.
	assert.NoError(t, m.Logout(ctx, "not-a-token"))
}

func TestManager_DeletedUserHasNoSession(t *testing.T) {
	m, creds, _ := newTestManager(t)
	ctx := context.Background()

	bob, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)
	sess, _, err := m.Login(ctx, "bob", "x")
	require.NoError(t, err)

	require.NoError(t, creds.Delete(ctx, bob.ID))

	_, err = m.CurrentUser(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_RejectsForeignAndEmptyTokens(t *testing.T) {
	m, creds, reg := newTestManager(t)
	ctx := context.Background()

	_, err := m.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = m.CurrentUser(ctx, "abc.def.ghi")
	assert.ErrorIs(t, err, ErrNoSession)

	bob, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)

	// Token signed with another secret for a registered session.
	require.NoError(t, reg.Put(ctx, "sid-1", bob.ID, time.Hour))
	forged, err := signToken([]byte("another-secret-another-secret!!"), "sid-1", bob.ID, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = m.CurrentUser(ctx, forged)
	assert.ErrorIs(t, err, ErrNoSession)

	// Correct signature but the session belongs to someone else.
	mallory, err := creds.Create(ctx, "mallory", "m", false)
	require.NoError(t, err)
	mismatched, err := signToken(m.secret, "sid-1", mallory.ID, time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = m.CurrentUser(ctx, mismatched)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestManager_ExpiredToken(t *testing.T) {
	m, creds, reg := newTestManager(t)
	ctx := context.Background()

	bob, err := creds.Create(ctx, "bob", "x", false)
	require.NoError(t, err)
	require.NoError(t, reg.Put(ctx, "sid-old", bob.ID, time.Hour))

	old, err := signToken(m.secret, "sid-old", bob.ID, time.Now().Add(-3*time.Hour), time.Hour)
	require.NoError(t, err)

	_, err = m.CurrentUser(ctx, old)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestDecodeSecret(t *testing.T) {
	assert.Equal(t, []byte("short"), DecodeSecret("short"))

	raw, err := NewRandomSecret(32)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}
