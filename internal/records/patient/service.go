// Copyright (c) 2026 Raduga Center. All rights reserved.

package patient

import (
	"context"
	"log/slog"
	"time"

	"github.com/raduga-center/raduga/internal/platform/validate"
)

// Service implements the record operations for patients.
type Service struct {
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates the patient service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return NewServiceAt(repo, logger, time.Now)
}

// NewServiceAt creates the service with an injected clock.
func NewServiceAt(repo Repository, logger *slog.Logger, now func() time.Time) *Service {
	return &Service{repo: repo, logger: logger, now: now}
}

func (service *Service) ListAll(ctx context.Context) ([]Patient, error) {

	patients, err := service.repo.ListPatients(ctx)
	if err != nil {
		return nil, err
	}

	now := service.now().UTC()
	for i := range patients {
		patients[i].refreshAge(now)
	}

	return patients, nil
}

func (service *Service) GetByID(ctx context.Context, id int64) (*Patient, error) {

	found, err := service.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	found.refreshAge(service.now().UTC())
	return found, nil
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Patient, error) {

	if err := validateInput(input.FIO, input.DateOfBirth.IsZero()); err != nil {
		return nil, err
	}

	created := &Patient{
		FIO:         input.FIO,
		DateOfBirth: input.DateOfBirth,
	}

	if err := service.repo.CreatePatient(ctx, created); err != nil {
		return nil, err
	}

	created.refreshAge(service.now().UTC())
	service.logger.Info("patient_created", slog.Int64("patient_id", created.ID))
	return created, nil
}

func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Patient, error) {

	if err := validateInput(input.FIO, input.DateOfBirth.IsZero()); err != nil {
		return nil, err
	}

	updated := &Patient{
		ID:          id,
		FIO:         input.FIO,
		DateOfBirth: input.DateOfBirth,
	}

	if err := service.repo.UpdatePatient(ctx, updated); err != nil {
		return nil, err
	}

	updated.refreshAge(service.now().UTC())
	service.logger.Info("patient_updated", slog.Int64("patient_id", id))
	return updated, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {

	if err := service.repo.DeletePatient(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("patient_deleted", slog.Int64("patient_id", id))
	return nil
}

func validateInput(fio string, missingBirthDate bool) error {
	validator := validate.New()

	validator.Required(FieldFIO, fio).
		MinLen(FieldFIO, fio, 10).
		MaxLen(FieldFIO, fio, 255)

	validator.Custom(FieldDateOfBirth, missingBirthDate, "Обязательное поле")

	return validator.Err()
}
