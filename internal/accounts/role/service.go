// Copyright (c) 2026 Raduga Center. All rights reserved.

package role

import (
	"context"
	"log/slog"

	"github.com/raduga-center/raduga/internal/platform/validate"
)

// Service implements the record operations for roles.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the role service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListAll(ctx context.Context) ([]Role, error) {
	return service.repo.ListRoles(ctx)
}

func (service *Service) GetByID(ctx context.Context, id int64) (*Role, error) {
	return service.repo.GetRole(ctx, id)
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Role, error) {

	if err := validateRole(input.Name, input.Description); err != nil {
		return nil, err
	}

	created := &Role{Name: input.Name, Description: input.Description}
	if err := service.repo.CreateRole(ctx, created); err != nil {
		return nil, err
	}

	service.logger.Info("role_created", slog.String("name", created.Name))
	return created, nil
}

func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Role, error) {

	if err := validateRole(input.Name, input.Description); err != nil {
		return nil, err
	}

	updated := &Role{ID: id, Name: input.Name, Description: input.Description}
	if err := service.repo.UpdateRole(ctx, updated); err != nil {
		return nil, err
	}

	service.logger.Info("role_updated", slog.Int64("role_id", id))
	return updated, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {

	if err := service.repo.DeleteRole(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("role_deleted", slog.Int64("role_id", id))
	return nil
}

func validateRole(name, description string) error {
	validator := validate.New()

	validator.Required(FieldName, name).
		Match(FieldName, name, namePattern, "Название содержит недопустимые символы или имеет неверную длину")
	validator.Match(FieldDescription, description, descriptionPattern, "Описание содержит недопустимые символы или имеет неверную длину")

	return validator.Err()
}
