package postgres

import (
	"context"
	"fmt"
	"strings"

	"deskbook/internal/model"
	"deskbook/internal/store"

	"github.com/jackc/pgx/v5"
)

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	username := strings.TrimSpace(u.Username)
	if username == "" {
		return model.User{}, fmt.Errorf("username_required")
	}

	out, err := scanUser(s.pool.QueryRow(ctx, `
		insert into public.users (username, password_hash, is_admin)
		values ($1, $2, $3)
		returning id, username, password_hash, is_admin, created_at
	`, username, u.PasswordHash, u.IsAdmin))
	if err != nil {
		return model.User{}, mapPgErr(err)
	}
	return out, nil
}

func (s *Store) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `
		select id, username, password_hash, is_admin, created_at
		from public.users
		where id = $1
	`, id))
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, `
		select id, username, password_hash, is_admin, created_at
		from public.users
		where username = $1
	`, username))
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.pool.Query(ctx, `
		select id, username, password_hash, is_admin, created_at
		from public.users
		order by id
	`)
	if err != nil {
		return nil, mapPgErr(err)
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `delete from public.users where id = $1`, id)
	if err != nil {
		return mapPgErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
