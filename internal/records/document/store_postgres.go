// Copyright (c) 2026 Raduga Center. All rights reserved.

package document

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

func (repository *PostgresRepository) ListDocuments(ctx context.Context) ([]Document, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT id, name, patient_id, subdirectory_type, author_id, created_at, updated_at
		FROM documents
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, dberr.Wrap(err, "list_documents")
	}
	defer rows.Close()

	var documents []Document
	for rows.Next() {
		var record Document
		err := rows.Scan(
			&record.ID, &record.Name, &record.PatientID,
			&record.Category, &record.AuthorID,
			&record.CreatedAt, &record.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_document")
		}
		documents = append(documents, record)
	}

	return documents, rows.Err()
}

func (repository *PostgresRepository) GetDocument(ctx context.Context, id int64) (*Document, error) {

	record := &Document{}
	err := repository.db.QueryRow(ctx, `
		SELECT id, name, patient_id, subdirectory_type, author_id, data, created_at, updated_at
		FROM documents
		WHERE id = $1
	`, id).Scan(
		&record.ID, &record.Name, &record.PatientID,
		&record.Category, &record.AuthorID, &record.Data,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_document")
	}

	return record, nil
}

func (repository *PostgresRepository) CreateDocument(ctx context.Context, record *Document) error {

	err := repository.db.QueryRow(ctx, `
		INSERT INTO documents (name, patient_id, subdirectory_type, author_id, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`,
		record.Name, record.PatientID, record.Category, record.AuthorID, record.Data,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	return dberr.Wrap(err, "create_document")
}

func (repository *PostgresRepository) UpdateDocument(ctx context.Context, record *Document, replaceData bool) error {

	if replaceData {
		err := repository.db.QueryRow(ctx, `
			UPDATE documents
			SET name = $2, patient_id = $3, subdirectory_type = $4, author_id = $5, data = $6, updated_at = NOW()
			WHERE id = $1
			RETURNING created_at, updated_at
		`,
			record.ID, record.Name, record.PatientID, record.Category, record.AuthorID, record.Data,
		).Scan(&record.CreatedAt, &record.UpdatedAt)
		return dberr.Wrap(err, "update_document")
	}

	err := repository.db.QueryRow(ctx, `
		UPDATE documents
		SET name = $2, patient_id = $3, subdirectory_type = $4, author_id = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at
	`,
		record.ID, record.Name, record.PatientID, record.Category, record.AuthorID,
	).Scan(&record.CreatedAt, &record.UpdatedAt)
	return dberr.Wrap(err, "update_document")
}

func (repository *PostgresRepository) DeleteDocument(ctx context.Context, id int64) error {

	cmd, err := repository.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return dberr.Wrap(err, "delete_document")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
