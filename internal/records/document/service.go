// Copyright (c) 2026 Raduga Center. All rights reserved.

package document

import (
	"context"
	"log/slog"

	"github.com/raduga-center/raduga/internal/platform/validate"
)

// Service implements the record operations for documents.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates the document service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListAll(ctx context.Context) ([]Document, error) {
	return service.repo.ListDocuments(ctx)
}

func (service *Service) GetByID(ctx context.Context, id int64) (*Document, error) {
	return service.repo.GetDocument(ctx, id)
}

func (service *Service) Create(ctx context.Context, input CreateInput) (*Document, error) {

	// An upload without a name inherits the original file name.
	if input.Name == "" {
		input.Name = input.FileName
	}

	validator := validate.New()
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 255)
	validator.Positive(FieldPatientID, input.PatientID)
	validator.Custom(FieldCategory, !input.Category.Valid(), "Недопустимый раздел документа")
	validator.Custom(FieldData, len(input.Data) == 0, "Файл обязателен")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	created := &Document{
		Name:      input.Name,
		PatientID: input.PatientID,
		Category:  input.Category,
		AuthorID:  input.AuthorID,
		Data:      input.Data,
	}

	if err := service.repo.CreateDocument(ctx, created); err != nil {
		return nil, err
	}

	service.logger.Info("document_created",
		slog.Int64("document_id", created.ID),
		slog.Int64("patient_id", created.PatientID),
		slog.String("subdirectory_type", string(created.Category)),
	)
	return created, nil
}

func (service *Service) Update(ctx context.Context, id int64, input UpdateInput) (*Document, error) {

	if input.Name == "" {
		input.Name = input.FileName
	}

	validator := validate.New()
	validator.Required(FieldName, input.Name).MaxLen(FieldName, input.Name, 255)
	validator.Positive(FieldPatientID, input.PatientID)
	validator.Custom(FieldCategory, !input.Category.Valid(), "Недопустимый раздел документа")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	updated := &Document{
		ID:        id,
		Name:      input.Name,
		PatientID: input.PatientID,
		Category:  input.Category,
		AuthorID:  input.AuthorID,
		Data:      input.Data,
	}

	// Without a new file the stored bytes are kept as they are.
	replaceData := len(input.Data) > 0

	if err := service.repo.UpdateDocument(ctx, updated, replaceData); err != nil {
		return nil, err
	}

	service.logger.Info("document_updated", slog.Int64("document_id", id))
	return updated, nil
}

func (service *Service) Delete(ctx context.Context, id int64) error {

	if err := service.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("document_deleted", slog.Int64("document_id", id))
	return nil
}
