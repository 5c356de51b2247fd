// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package patient manages the center's patient records.
package patient

import (
	"time"

	"github.com/raduga-center/raduga/pkg/dateonly"
)

// Patient is a child receiving therapy at the center.
type Patient struct {
	ID          int64         `json:"id"`
	FIO         string        `json:"fio"`
	DateOfBirth dateonly.Date `json:"date_of_birth"`
	Age         int           `json:"age"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// refreshAge recomputes the derived age from the birth date.
func (patient *Patient) refreshAge(now time.Time) {
	patient.Age = patient.DateOfBirth.YearsSince(now)
}

// CreateInput is the payload for registering a new patient.
type CreateInput struct {
	FIO         string        `json:"fio"`
	DateOfBirth dateonly.Date `json:"date_of_birth"`
}

// UpdateInput is the payload for editing a patient record.
type UpdateInput struct {
	FIO         string        `json:"fio"`
	DateOfBirth dateonly.Date `json:"date_of_birth"`
}

// Field names for validation details
const (
	FieldFIO         = "fio"
	FieldDateOfBirth = "date_of_birth"
)
