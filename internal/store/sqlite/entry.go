package sqlite

import (
	"context"
	"fmt"
	"time"

	"deskbook/internal/model"
)

const entryColumns = `id, client_name, anydesk_id, anydesk_password, created_at, updated_at`

func scanEntry(row rowScanner) (model.ConnectionEntry, error) {
	var e model.ConnectionEntry
	err := row.Scan(&e.ID, &e.Name, &e.RemoteID, &e.RemotePassword, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func (s *Store) CreateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO connection_entries (client_name, anydesk_id, anydesk_password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, e.Name, e.RemoteID, e.RemotePassword, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return model.ConnectionEntry{}, fmt.Errorf("insert entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.ConnectionEntry{}, fmt.Errorf("last insert id: %w", err)
	}
	e.ID = id
	return e, nil
}

func (s *Store) GetEntry(ctx context.Context, id int64) (*model.ConnectionEntry, error) {
	return getEntry(ctx, s.db, id)
}

func getEntry(ctx context.Context, db DBTX, id int64) (*model.ConnectionEntry, error) {
	e, err := scanEntry(db.QueryRowContext(ctx,
		`SELECT `+entryColumns+` FROM connection_entries WHERE id = ?`, id))
	if err != nil {
		return nil, mapSQLiteErr(err)
	}
	return &e, nil
}

func (s *Store) ListEntries(ctx context.Context) ([]model.ConnectionEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+entryColumns+` FROM connection_entries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
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
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateEntry overwrites all three text fields and returns the stored row.
func (s *Store) UpdateEntry(ctx context.Context, e model.ConnectionEntry) (model.ConnectionEntry, error) {
	var out model.ConnectionEntry
	err := s.withTx(ctx, func(ctx context.Context, tx DBTX) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE connection_entries
			SET client_name = ?, anydesk_id = ?, anydesk_password = ?, updated_at = ?
			WHERE id = ?
		`, e.Name, e.RemoteID, e.RemotePassword, time.Now().UTC(), e.ID)
		if err != nil {
			return fmt.Errorf("update entry: %w", err)
		}
		if err := expectOneRow(res); err != nil {
			return err
		}
		got, err := getEntry(ctx, tx, e.ID)
		if err != nil {
			return err
		}
		out = *got
		return nil
	})
	if err != nil {
		return model.ConnectionEntry{}, err
	}
	return out, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM connection_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return expectOneRow(res)
}
