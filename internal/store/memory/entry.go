package memory

import (
	"context"
	"time"

	"deskbook/internal/model"
	"deskbook/internal/store"
)

func (s *Store) CreateEntry(_ context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	e.ID = s.entryIDs.next()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.entries[e.ID] = e
	return e, nil
}

func (s *Store) GetEntry(_ context.Context, id int64) (*model.ConnectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &e, nil
}

func (s *Store) ListEntries(_ context.Context) ([]model.ConnectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ConnectionEntry, 0, len(s.entries))
	for _, id := range sortedIDs(s.entries) {
		out = append(out, s.entries[id])
	}
	return out, nil
}

// UpdateEntry overwrites name, remote id and remote password; the id and
// creation time are kept.
func (s *Store) UpdateEntry(_ context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.entries[e.ID]
	if !ok {
		return model.ConnectionEntry{}, store.ErrNotFound
	}

	existing.Name = e.Name
	existing.RemoteID = e.RemoteID
	existing.RemotePassword = e.RemotePassword
	existing.UpdatedAt = time.Now().UTC()
	s.entries[e.ID] = existing
	return existing, nil
}

func (s *Store) DeleteEntry(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.entries, id)
	return nil
}
