// Copyright (c) 2026 Raduga Center. All rights reserved.

package stats

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

func (repository *PostgresRepository) DocumentsPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	return repository.daySeries(ctx, `
		SELECT created_at::date AS day, count(*)
		FROM documents
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, "stats_documents_per_day", since)
}

func (repository *PostgresRepository) DocumentsPerDayByAuthor(ctx context.Context, since time.Time, authorID int64) ([]DayCount, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT created_at::date AS day, count(*)
		FROM documents
		WHERE created_at >= $1 AND author_id = $2
		GROUP BY day
		ORDER BY day
	`, since, authorID)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_documents_per_author")
	}
	defer rows.Close()

	return scanDays(rows)
}

func (repository *PostgresRepository) PatientsWithNewDocumentsPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	return repository.daySeries(ctx, `
		SELECT created_at::date AS day, count(DISTINCT patient_id)
		FROM documents
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, "stats_patient_dynamics", since)
}

func (repository *PostgresRepository) UsersCreatedPerDay(ctx context.Context, since time.Time) ([]DayCount, error) {
	return repository.daySeries(ctx, `
		SELECT created_at::date AS day, count(*)
		FROM users
		WHERE created_at >= $1
		GROUP BY day
		ORDER BY day
	`, "stats_user_dynamics", since)
}

func (repository *PostgresRepository) UsersPerRole(ctx context.Context, since time.Time) ([]NameCount, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT r.name, count(u.id)
		FROM roles r
		LEFT JOIN users u ON u.role_id = r.id AND u.created_at >= $1
		GROUP BY r.id, r.name
		ORDER BY r.id
	`, since)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_users_per_role")
	}
	defer rows.Close()

	return scanNames(rows)
}

func (repository *PostgresRepository) DocumentsPerCategory(ctx context.Context, since time.Time) ([]NameCount, error) {

	rows, err := repository.db.Query(ctx, `
		SELECT subdirectory_type, count(*)
		FROM documents
		WHERE created_at >= $1
		GROUP BY subdirectory_type
	`, since)
	if err != nil {
		return nil, dberr.Wrap(err, "stats_documents_per_category")
	}
	defer rows.Close()

	return scanNames(rows)
}

// # Scan Helpers

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func (repository *PostgresRepository) daySeries(ctx context.Context, query, action string, since time.Time) ([]DayCount, error) {

	rows, err := repository.db.Query(ctx, query, since)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	defer rows.Close()

	return scanDays(rows)
}

func scanDays(rows rowScanner) ([]DayCount, error) {
	var series []DayCount

	for rows.Next() {
		var day time.Time
		var count int64
		if err := rows.Scan(&day, &count); err != nil {
			return nil, dberr.Wrap(err, "stats_scan_day")
		}
		series = append(series, DayCount{Date: dateonly.FromTime(day), Count: count})
	}

	return series, rows.Err()
}

func scanNames(rows rowScanner) ([]NameCount, error) {
	var series []NameCount

	for rows.Next() {
		var point NameCount
		if err := rows.Scan(&point.Name, &point.Count); err != nil {
			return nil, dberr.Wrap(err, "stats_scan_name")
		}
		series = append(series, point)
	}

	return series, rows.Err()
}
