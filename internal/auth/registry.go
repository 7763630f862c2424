package auth

import (
	"context"
	"sync"
	"time"
)

// Registry keeps the server-side half of a session: which user a session id
// belongs to and until when.
type Registry interface {
	Put(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (int64, error)
	Delete(ctx context.Context, sessionID string) error
}

type memorySession struct {
	userID    int64
	expiresAt time.Time
}

// MemoryRegistry is a process-local Registry. Sessions are lost on restart.
type MemoryRegistry struct {
	mu       sync.Mutex
	sessions map[string]memorySession
	now      func() time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

func (r *MemoryRegistry) Put(_ context.Context, sessionID string, userID int64, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[sessionID] = memorySession{userID: userID, expiresAt: r.now().Add(ttl)}
	return nil
}

func (r *MemoryRegistry) Lookup(_ context.Context, sessionID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return 0, ErrNoSession
	}
	if !r.now().Before(s.expiresAt) {
		delete(r.sessions, sessionID)
		return 0, ErrNoSession
	}
	return s.userID, nil
}

func (r *MemoryRegistry) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, sessionID)
	return nil
}

// PurgeExpired drops sessions that expired before now and returns how many.
func (r *MemoryRegistry) PurgeExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if !now.Before(s.expiresAt) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *MemoryRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
