// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package role manages the staff role dictionary.
//
// Roles are an ordered privilege ladder: id 1 is the administrator and
// larger ids carry progressively fewer rights. Route allow-lists reference
// the seeded ids through the constants package.
package role

import (
	"regexp"
	"time"
)

// Name and description patterns allow Russian and Latin letters; the
// description additionally admits common punctuation.
var (
	namePattern        = regexp.MustCompile(`^[A-Za-zА-Яа-яёЁ0-9\s\-_]{3,255}$`)
	descriptionPattern = regexp.MustCompile(`^[A-Za-zА-Яа-яёЁ0-9!@#$%^&*()_+=\-\[\]\{\};':"\\|,.<>/?\s]{0,1000}$`)
)

// Role is a staff privilege tier.
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateInput is the payload for adding a role.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateInput is the payload for editing a role.
type UpdateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Field names for validation details
const (
	FieldName        = "name"
	FieldDescription = "description"
)
