// Copyright (c) 2026 Raduga Center. All rights reserved.

package user

import "context"

// Repository is the persistence contract for staff accounts.
type Repository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User, replacePassword bool) error
	DeleteUser(ctx context.Context, id int64) error

	// SetPhoto persists the stored photo filename; nil clears it.
	SetPhoto(ctx context.Context, id int64, filename *string) error
}
