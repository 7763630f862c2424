package services

import (
	"context"

	"deskbook/internal/model"
	"deskbook/internal/store"
)

// Entries is the connection registry: shared, unowned remote-access entries
// that any authenticated user may manage.
type Entries struct {
	store store.Store
}

func NewEntries(st store.Store) *Entries {
	return &Entries{store: st}
}

func (s *Entries) ListEntries(ctx context.Context) ([]model.ConnectionEntry, error) {
	return s.store.ListEntries(ctx)
}

func (s *Entries) GetEntry(ctx context.Context, id int64) (*model.ConnectionEntry, error) {
	return s.store.GetEntry(ctx, id)
}

func (s *Entries) AddEntry(ctx context.Context, name, remoteID, remotePassword string) (model.ConnectionEntry, error) {
	return s.store.CreateEntry(ctx, model.ConnectionEntry{
		Name:           name,
		RemoteID:       remoteID,
		RemotePassword: remotePassword,
	})
}

// UpdateEntry overwrites all three fields of an existing entry.
func (s *Entries) UpdateEntry(ctx context.Context, id int64, name, remoteID, remotePassword string) (model.ConnectionEntry, error) {
	return s.store.UpdateEntry(ctx, model.ConnectionEntry{
		ID:             id,
		Name:           name,
		RemoteID:       remoteID,
		RemotePassword: remotePassword,
	})
}

func (s *Entries) RemoveEntry(ctx context.Context, id int64) error {
	return s.store.DeleteEntry(ctx, id)
}
