// Copyright (c) 2026 Raduga Center. All rights reserved.

package stats

import (
	"context"
	"time"
)

// Repository answers aggregate queries over the records database.
//
// Day series come back sparse (only days with activity); the service
// zero-fills the gaps.
type Repository interface {
	DocumentsPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	DocumentsPerDayByAuthor(ctx context.Context, since time.Time, authorID int64) ([]DayCount, error)
	PatientsWithNewDocumentsPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	UsersCreatedPerDay(ctx context.Context, since time.Time) ([]DayCount, error)
	UsersPerRole(ctx context.Context, since time.Time) ([]NameCount, error)
	DocumentsPerCategory(ctx context.Context, since time.Time) ([]NameCount, error)
}
