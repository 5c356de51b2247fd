// Copyright (c) 2026 Raduga Center. All rights reserved.

package role

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

func (repository *PostgresRepository) ListRoles(ctx context.Context) ([]Role, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_roles")
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var record Role
		if err := rows.Scan(&record.ID, &record.Name, &record.Description, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_role")
		}
		roles = append(roles, record)
	}

	return roles, rows.Err()
}

func (repository *PostgresRepository) GetRole(ctx context.Context, id int64) (*Role, error) {

	record := &Role{}
	err := repository.db.QueryRow(ctx, `
		SELECT id, name, description, created_at, updated_at
		FROM roles
		WHERE id = $1
	`, id).Scan(&record.ID, &record.Name, &record.Description, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_role")
	}

	return record, nil
}

func (repository *PostgresRepository) CreateRole(ctx context.Context, record *Role) error {

	err := repository.db.QueryRow(ctx, `
		INSERT INTO roles (name, description, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, record.Name, record.Description).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "create_role")
}

func (repository *PostgresRepository) UpdateRole(ctx context.Context, record *Role) error {

	err := repository.db.QueryRow(ctx, `
		UPDATE roles
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, record.ID, record.Name, record.Description).Scan(&record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "update_role")
}

func (repository *PostgresRepository) DeleteRole(ctx context.Context, id int64) error {

	cmd, err := repository.db.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_role")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
