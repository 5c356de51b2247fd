// Copyright (c) 2026 Raduga Center. All rights reserved.

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raduga-center/raduga/internal/platform/dberr"
)

// # PostgreSQL Store

const sqlFindPrincipalByLogin = `
	SELECT id, login, fio, role_id, active, hashed_password
	FROM users
	WHERE login = $1`

// PostgresStore loads staff accounts from the users table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the account store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindByLogin implements [PrincipalStore].
func (store *PostgresStore) FindByLogin(ctx context.Context, login string) (*Principal, error) {

	principal := &Principal{}
	err := store.pool.QueryRow(ctx, sqlFindPrincipalByLogin, login).Scan(
		&principal.ID,
		&principal.Login,
		&principal.FIO,
		&principal.RoleID,
		&principal.Active,
		&principal.PasswordHash,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "auth: find principal by login")
	}

	return principal, nil
}
