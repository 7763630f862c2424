package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deskbook/internal/model"
	"deskbook/internal/store"

	"github.com/google/uuid"
)

type Session struct {
	ID        string
	UserID    int64
	Token     string
	ExpiresAt time.Time
}

// Manager is the session authenticator: it turns credentials into a session
// token and a token back into the live user record.
type Manager struct {
	creds    *Credentials
	registry Registry
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(creds *Credentials, registry Registry, secret []byte, ttl time.Duration) *Manager {
	return &Manager{
		creds:    creds,
		registry: registry,
		secret:   secret,
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *Manager) TTL() time.Duration { return m.ttl }

func (m *Manager) Login(ctx context.Context, username, password string) (Session, *model.User, error) {
	u, err := m.creds.Verify(ctx, username, password)
	if err != nil {
		return Session{}, nil, err
	}

	now := m.now()
	sess := Session{
		ID:        uuid.NewString(),
		UserID:    u.ID,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.registry.Put(ctx, sess.ID, u.ID, m.ttl); err != nil {
		return Session{}, nil, fmt.Errorf("register session: %w", err)
	}
	sess.Token, err = signToken(m.secret, sess.ID, u.ID, now, m.ttl)
	if err != nil {
		_ = m.registry.Delete(ctx, sess.ID)
		return Session{}, nil, fmt.Errorf("sign session token: %w", err)
	}
	return sess, u, nil
}

// CurrentUser resolves a token to its user. Any reason the token cannot be
// honoured (bad signature, expired, logged out, user deleted) is ErrNoSession.
func (m *Manager) CurrentUser(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}
	sessionID, userID, err := parseToken(m.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}
	registered, err := m.registry.Lookup(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if registered != userID {
		return nil, ErrNoSession
	}

	u, err := m.creds.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = m.registry.Delete(ctx, sessionID)
			return nil, ErrNoSession
		}
		return nil, err
	}
	return u, nil
}

// Logout forgets the session named by token. Invalid tokens are ignored.
func (m *Manager) Logout(ctx context.Context, token string) error {
	sessionID, _, err := parseToken(m.secret, token)
	if err != nil {
		return nil
	}
	return m.registry.Delete(ctx, sessionID)
}
