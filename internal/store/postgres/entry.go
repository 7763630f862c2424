package postgres

import (
	"context"

	"deskbook/internal/model"
	"deskbook/internal/store"

	"github.com/jackc/pgx/v5"
)

func scanEntry(row pgx.Row) (model.ConnectionEntry, error) {
	var e model.ConnectionEntry
	err := row.Scan(&e.ID, &e.Name, &e.RemoteID, &e.RemotePassword, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *Store) CreateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	out, err := scanEntry(s.pool.QueryRow(ctx, `
		insert into public.connection_entries (client_name, anydesk_id, anydesk_password)
		values ($1, $2, $3)
		returning id, client_name, anydesk_id, anydesk_password, created_at, updated_at
	`, e.Name, e.RemoteID, e.RemotePassword))
	if err != nil {
		return model.ConnectionEntry{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*model.ConnectionEntry, error) {
	e, err := scanEntry(s.pool.QueryRow(ctx, `
		select id, client_name, anydesk_id, anydesk_password, created_at, updated_at
		from public.connection_entries
		where id = $1
	`, id))
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &e, nil
}

func (s *Store) ListEntries(ctx context.Context) ([]model.ConnectionEntry, error) {
	rows, err := s.pool.Query(ctx, `
		select id, client_name, anydesk_id, anydesk_password, created_at, updated_at
		from public.connection_entries
		order by id
	`)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	out := []model.ConnectionEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) UpdateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	out, err := scanEntry(s.pool.QueryRow(ctx, `
		update public.connection_entries
		set client_name = $2,
		    anydesk_id = $3,
		    anydesk_password = $4,
		    updated_at = now()
		where id = $1
		returning id, client_name, anydesk_id, anydesk_password, created_at, updated_at
	`, e.ID, e.Name, e.RemoteID, e.RemotePassword))
	if err != nil {
		return model.ConnectionEntry{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `delete from public.connection_entries where id = $1`, id)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
