// Copyright (c) 2026 Raduga Center. All rights reserved.

package user

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raduga-center/raduga/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListUsers(ctx context.Context) ([]User, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT id, fio, login, email, role_id, photo_url, active, hashed_password, created_at, updated_at
		FROM users
		ORDER BY fio ASC
	`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_users")
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var record User
		err := rows.Scan(
			&record.ID, &record.FIO, &record.Login, &record.Email,
			&record.RoleID, &record.PhotoURL, &record.Active,
			&record.HashedPassword, &record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_user")
		}
		users = append(users, record)
	}

	return users, rows.Err()
}

func (repository *PostgresRepository) GetUser(ctx context.Context, id int64) (*User, error) {

	record := &User{}
	err := repository.db.QueryRow(ctx, `
		SELECT id, fio, login, email, role_id, photo_url, active, hashed_password, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id).Scan(
		&record.ID, &record.FIO, &record.Login, &record.Email,
		&record.RoleID, &record.PhotoURL, &record.Active,
		&record.HashedPassword, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_user")
	}

	return record, nil
}

func (repository *PostgresRepository) CreateUser(ctx context.Context, record *User) error {

	err := repository.db.QueryRow(ctx, `
		INSERT INTO users (fio, login, email, role_id, active, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`,
		record.FIO, record.Login, record.Email, record.RoleID, record.Active, record.HashedPassword,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "create_user")
}

func (repository *PostgresRepository) UpdateUser(ctx context.Context, record *User, replacePassword bool) error {

	if replacePassword {
		err := repository.db.QueryRow(ctx, `
			UPDATE users
			SET fio = $2, login = $3, email = $4, role_id = $5, active = $6, hashed_password = $7, updated_at = NOW()
			WHERE id = $1
			RETURNING photo_url, created_at, updated_at
		`,
			record.ID, record.FIO, record.Login, record.Email, record.RoleID, record.Active, record.HashedPassword,
		).Scan(&record.PhotoURL, &record.CreatedAt, &record.UpdatedAt)
		return dberr.Wrap(err, "update_user")
	}

	err := repository.db.QueryRow(ctx, `
		UPDATE users
		SET fio = $2, login = $3, email = $4, role_id = $5, active = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING photo_url, created_at, updated_at
	`,
		record.ID, record.FIO, record.Login, record.Email, record.RoleID, record.Active,
	).Scan(&record.PhotoURL, &record.CreatedAt, &record.UpdatedAt)
	return dberr.Wrap(err, "update_user")
}

func (repository *PostgresRepository) DeleteUser(ctx context.Context, id int64) error {

	cmd, err := repository.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SetPhoto(ctx context.Context, id int64, filename *string) error {

	cmd, err := repository.db.Exec(ctx, `
		UPDATE users SET photo_url = $2, updated_at = NOW() WHERE id = $1
	`, id, filename)
	if err != nil {
		return dberr.Wrap(err, "set_user_photo")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
