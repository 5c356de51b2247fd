// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
//
// Stores never leak pgx internals upward: every query error passes through
// [Wrap], which reduces it to one of the sentinels below or to a generic
// internal error with the SQL detail hidden from clients.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/raduga-center/raduga/internal/platform/apperr"
)

var (
	// ErrNotFound reports that a queried row doesn't exist. Resource routers
	// translate it to a localized 404 (or the soft 206 variant for reads).
	ErrNotFound = errors.New("dberr: not found")

	// ErrUniqueViolation reports a duplicate value on a unique column.
	// Resource routers translate it to a localized 409.
	ErrUniqueViolation = errors.New("dberr: unique violation")
)

// Wrap inspects a database error and classifies it.
//
// # Classification
//   - pgx.ErrNoRows             → [ErrNotFound]
//   - SQLSTATE 23505           → [ErrUniqueViolation]
//   - anything else            → 500 [apperr.AppError] carrying the cause
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return fmt.Errorf("%s: %w", action, ErrUniqueViolation)
	}

	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
