// Copyright (c) 2026 Raduga Center. All rights reserved.

// Package user manages staff accounts and their profile photos.
package user

import "time"

// User is a staff account. The password hash never leaves the package.
type User struct {
	ID        int64     `json:"id"`
	FIO       string    `json:"fio"`
	Login     string    `json:"login"`
	Email     *string   `json:"email"`
	RoleID    int64     `json:"role_id"`
	PhotoURL  *string   `json:"photo_url"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// HashedPassword is populated by storage and hidden from every response.
	HashedPassword string `json:"-"`
}

// CreateInput is the payload for registering a staff account.
// The plaintext password is hashed at the service boundary and discarded.
type CreateInput struct {
	FIO      string  `json:"fio"`
	Login    string  `json:"login"`
	Password string  `json:"password"`
	RoleID   int64   `json:"role_id"`
	Email    *string `json:"email"`
}

// UpdateInput is the payload for editing a staff account.
//
// Every field is optional: a field absent from the payload keeps the stored
// value. In particular, an edit that never mentions active must not
// re-activate a deactivated account.
type UpdateInput struct {
	FIO      *string `json:"fio"`
	Login    *string `json:"login"`
	Password *string `json:"password"`
	RoleID   *int64  `json:"role_id"`
	Email    *string `json:"email"`
	Active   *bool   `json:"active"`
}

// Field names for validation details
const (
	FieldFIO      = "fio"
	FieldLogin    = "login"
	FieldPassword = "password"
	FieldRoleID   = "role_id"
	FieldEmail    = "email"
)
