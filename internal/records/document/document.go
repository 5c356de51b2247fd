// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package document manages patient documents and their binary content.
package document

import (
	"mime"
	"path/filepath"
	"time"
)

// Category is the fixed set of document sections. The wire values are the
// Russian section names the center has always used; changing them would
// break every stored record and the frontend's section tabs.
type Category string

const (
	CategoryDiagnostics Category = "Диагностика"
	CategoryAnamnesis   Category = "Анамнез"
	CategoryWorkPlan    Category = "План работы"
	CategoryComments    Category = "Комментарии специалистов"
	CategoryMedia       Category = "Фотографии и Видео"
)

// Categories lists every valid category in display order.
func Categories() []Category {
	return []Category{
		CategoryDiagnostics,
		CategoryAnamnesis,
		CategoryWorkPlan,
		CategoryComments,
		CategoryMedia,
	}
}

// Valid reports whether the category is one of the fixed five.
func (category Category) Valid() bool {
	for _, known := range Categories() {
		if category == known {
			return true
		}
	}
	return false
}

// Document is a stored record file attached to a patient.
// Data never appears in JSON responses; it is streamed by the download route.
type Document struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	PatientID int64     `json:"patient_id"`
	Category  Category  `json:"subdirectory_type"`
	AuthorID  *int64    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Data      []byte    `json:"-"`
}

// ContentType guesses the MIME type from the document name extension.
func (document *Document) ContentType() string {
	if contentType := mime.TypeByExtension(filepath.Ext(document.Name)); contentType != "" {
		return contentType
	}
	return "application/octet-stream"
}

// CreateInput is the payload for uploading a document. The Data and
// FileName fields are filled from the multipart file part, not from JSON.
type CreateInput struct {
	Name      string   `json:"name"`
	PatientID int64    `json:"patient_id"`
	Category  Category `json:"subdirectory_type"`
	AuthorID  *int64   `json:"author_id"`
	Data      []byte   `json:"-"`
	FileName  string   `json:"-"`
}

// UpdateInput is the payload for editing a document. A nil Data keeps the
// stored file untouched.
type UpdateInput struct {
	Name      string   `json:"name"`
	PatientID int64    `json:"patient_id"`
	Category  Category `json:"subdirectory_type"`
	AuthorID  *int64   `json:"author_id"`
	Data      []byte   `json:"-"`
	FileName  string   `json:"-"`
}

// Field names for validation details
const (
	FieldName      = "name"
	FieldPatientID = "patient_id"
	FieldCategory  = "subdirectory_type"
	FieldData      = "data"
)
