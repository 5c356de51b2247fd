// Copyright (c) 2026 Raduga Center. All rights reserved.

package user

import (
	"context"
	"log/slog"

	"github.com/raduga-center/raduga/internal/platform/sec"
	"github.com/raduga-center/raduga/internal/platform/validate"
	"github.com/raduga-center/raduga/pkg/pointer"
)

// Service implements the record operations for staff accounts.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the user service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListAll(ctx context.Context) ([]User, error) {
	return service.repo.ListUsers(ctx)
}

func (service *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	return service.repo.GetUser(ctx, id)
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {

	validator := validate.New()
	validator.Required(FieldFIO, input.FIO).
		MinLen(FieldFIO, input.FIO, 12).
		MaxLen(FieldFIO, input.FIO, 255)
	validator.Required(FieldLogin, input.Login).
		MinLen(FieldLogin, input.Login, 5).
		MaxLen(FieldLogin, input.Login, 50)
	validator.Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 5).
		MaxLen(FieldPassword, input.Password, 50)
	validator.Positive(FieldRoleID, input.RoleID)
	if input.Email != nil && *input.Email != "" {
		validator.Email(FieldEmail, *input.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// The plaintext password exists only on this stack frame.
	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	created := &User{
		FIO:            input.FIO,
		Login:          input.Login,
		Email:          input.Email,
		RoleID:         input.RoleID,
		Active:         true,
		HashedPassword: hash,
	}

	if err := service.repo.CreateUser(ctx, created); err != nil {
		return nil, err
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", created.ID),
		slog.Int64("role_id", created.RoleID),
	)
	return created, nil
}

func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*User, error) {

	// Partial update: start from the stored row and overlay only the
	// fields the payload actually carried. An omitted active flag keeps
	// a deactivated account deactivated.
	current, err := service.repo.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := &User{
		ID:             id,
		FIO:            pointer.Fallback(input.FIO, current.FIO),
		Login:          pointer.Fallback(input.Login, current.Login),
		RoleID:         pointer.Fallback(input.RoleID, current.RoleID),
		Active:         pointer.Fallback(input.Active, current.Active),
		Email:          current.Email,
		HashedPassword: current.HashedPassword,
	}
	if input.Email != nil {
		updated.Email = input.Email
	}

	validator := validate.New()
	validator.Required(FieldFIO, updated.FIO).
		MinLen(FieldFIO, updated.FIO, 12).
		MaxLen(FieldFIO, updated.FIO, 255)
	validator.Required(FieldLogin, updated.Login).
		MinLen(FieldLogin, updated.Login, 5).
		MaxLen(FieldLogin, updated.Login, 50)
	if input.Password != nil && *input.Password != "" {
		validator.MinLen(FieldPassword, *input.Password, 5).
			MaxLen(FieldPassword, *input.Password, 50)
	}
	validator.Positive(FieldRoleID, updated.RoleID)
	if updated.Email != nil && *updated.Email != "" {
		validator.Email(FieldEmail, *updated.Email)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// An absent or empty password keeps the stored hash untouched.
	replacePassword := input.Password != nil && *input.Password != ""
	if replacePassword {
		hash, err := sec.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		updated.HashedPassword = hash
	}

	if err := service.repo.UpdateUser(ctx, updated, replacePassword); err != nil {
		return nil, err
	}

	service.logger.Info("user_updated", slog.Int64("user_id", id))
	return updated, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {

	if err := service.repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("user_deleted", slog.Int64("user_id", id))
	return nil
}
