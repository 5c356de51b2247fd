// Copyright (c) 2026 Raduga Center. All rights reserved.

package patient

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raduga-center/raduga/internal/platform/dberr"
	"github.com/raduga-center/raduga/pkg/dateonly"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListPatients(ctx context.Context) ([]Patient, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT id, fio, date_of_birth, created_at, updated_at
		FROM patients
		ORDER BY fio ASC
	`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_patients")
	}
	defer rows.Close()

	var patients []Patient
	for rows.Next() {
		var record Patient
		var birthDate time.Time

		if err := rows.Scan(&record.ID, &record.FIO, &birthDate, &record.CreatedAt, &record.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_patient")
		}

		record.DateOfBirth = dateonly.FromTime(birthDate)
		patients = append(patients, record)
	}

	return patients, rows.Err()
}

func (repository *PostgresRepository) GetPatient(ctx context.Context, id int64) (*Patient, error) {

	record := &Patient{}
	var birthDate time.Time

	err := repository.db.QueryRow(ctx, `
		SELECT id, fio, date_of_birth, created_at, updated_at
		FROM patients
		WHERE id = $1
	`, id).Scan(&record.ID, &record.FIO, &birthDate, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_patient")
	}

	record.DateOfBirth = dateonly.FromTime(birthDate)
	return record, nil
}

func (repository *PostgresRepository) CreatePatient(ctx context.Context, record *Patient) error {

	err := repository.db.QueryRow(ctx, `
		INSERT INTO patients (fio, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, record.FIO, record.DateOfBirth.Time).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "create_patient")
}

func (repository *PostgresRepository) UpdatePatient(ctx context.Context, record *Patient) error {

	err := repository.db.QueryRow(ctx, `
		UPDATE patients
		SET fio = $2, date_of_birth = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, record.ID, record.FIO, record.DateOfBirth.Time).Scan(&record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "update_patient")
}

func (repository *PostgresRepository) DeletePatient(ctx context.Context, id int64) error {

	cmd, err := repository.db.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_patient")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
