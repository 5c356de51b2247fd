// Copyright (c) 2026 Raduga Center. All rights reserved.

package stats

import (
	"context"
	"time"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/records/document"
	"github.com/raduga-center/raduga/pkg/dateonly"
)

// ErrBadWindow rejects out-of-range {days} parameters.
var ErrBadWindow = apperr.BadRequest("Количество дней должно быть от 1 до 1825")

// Service assembles zero-filled statistics series.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates the statistics service.
func NewService(repo Repository) *Service {
	return NewServiceAt(repo, time.Now)
}

// NewServiceAt creates the service with an injected clock.
func NewServiceAt(repo Repository, now func() time.Time) *Service {
	return &Service{repo: repo, now: now}
}

// window resolves the {days} parameter into the series start date.
// A window of 1 covers today only.
func (service *Service) window(days int) (dateonly.Date, dateonly.Date, error) {
	if days < MinWindowDays || days > MaxWindowDays {
		return dateonly.Date{}, dateonly.Date{}, ErrBadWindow
	}

	today := dateonly.FromTime(service.now().UTC())
	return today.AddDays(-(days - 1)), today, nil
}

// DocumentsPerDay returns documents created per day over the window.
func (service *Service) DocumentsPerDay(ctx context.Context, days int) ([]DayCount, error) {
	start, end, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.DocumentsPerDay(ctx, start.Time)
	if err != nil {
		return nil, err
	}

	return fillDays(sparse, start, end), nil
}

// DocumentsPerDayByAuthor returns documents created per day by one author.
func (service *Service) DocumentsPerDayByAuthor(ctx context.Context, days int, authorID int64) ([]DayCount, error) {
	start, end, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.DocumentsPerDayByAuthor(ctx, start.Time, authorID)
	if err != nil {
		return nil, err
	}

	return fillDays(sparse, start, end), nil
}

// PatientDynamics returns distinct patients with new documents per day.
func (service *Service) PatientDynamics(ctx context.Context, days int) ([]PatientDayCount, error) {
	start, end, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.PatientsWithNewDocumentsPerDay(ctx, start.Time)
	if err != nil {
		return nil, err
	}

	filled := fillDays(sparse, start, end)
	full := make([]PatientDayCount, 0, len(filled))
	for _, point := range filled {
		full = append(full, PatientDayCount{Date: point.Date, Count: point.Count})
	}
	return full, nil
}

// UserDynamics returns staff accounts created per day.
func (service *Service) UserDynamics(ctx context.Context, days int) ([]UserDayCount, error) {
	start, end, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.UsersCreatedPerDay(ctx, start.Time)
	if err != nil {
		return nil, err
	}

	filled := fillDays(sparse, start, end)
	full := make([]UserDayCount, 0, len(filled))
	for _, point := range filled {
		full = append(full, UserDayCount{Date: point.Date, Count: point.Count})
	}
	return full, nil
}

// RoleCounts returns staff accounts per role name over the window.
func (service *Service) RoleCounts(ctx context.Context, days int) ([]RoleCount, error) {
	start, _, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.UsersPerRole(ctx, start.Time)
	if err != nil {
		return nil, err
	}

	counts := make([]RoleCount, 0, len(sparse))
	for _, row := range sparse {
		counts = append(counts, RoleCount{Role: row.Name, Count: row.Count})
	}
	return counts, nil
}

// CategoryCounts returns documents per category over the window.
// All five categories appear even when empty.
func (service *Service) CategoryCounts(ctx context.Context, days int) ([]CategoryCount, error) {
	start, _, err := service.window(days)
	if err != nil {
		return nil, err
	}

	sparse, err := service.repo.DocumentsPerCategory(ctx, start.Time)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(sparse))
	for _, point := range sparse {
		counts[point.Name] = point.Count
	}

	full := make([]CategoryCount, 0, len(document.Categories()))
	for _, category := range document.Categories() {
		full = append(full, CategoryCount{Category: string(category), Count: counts[string(category)]})
	}

	return full, nil
}

// fillDays expands a sparse series so every day of the window is present.
func fillDays(sparse []DayCount, start, end dateonly.Date) []DayCount {

	counts := make(map[string]int64, len(sparse))
	for _, point := range sparse {
		counts[point.Date.String()] = point.Count
	}

	var full []DayCount
	for day := start; !day.After(end.Time); day = day.AddDays(1) {
		full = append(full, DayCount{Date: day, Count: counts[day.String()]})
	}

	return full
}
