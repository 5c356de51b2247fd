// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package auth implements identity and access control for the Raduga API.

It covers the full credential lifecycle:

  - Login: credential verification and JWT pair issuance.
  - Refresh: rotation of both tokens from a valid refresh token.
  - Gate: per-request bearer validation and role authorization.

The gate re-reads the account from storage on every protected request, so
deactivating a user or changing their role takes effect immediately instead
of waiting for the access token to expire.
*/
package auth

import "context"

// # Principal

// Principal is the live account record behind an authenticated request.
type Principal struct {
	ID           int64
	Login        string
	FIO          string
	RoleID       int64
	Active       bool
	PasswordHash string
}

// PrincipalStore loads accounts for authentication and authorization checks.
type PrincipalStore interface {

	// FindByLogin returns the account with the given login,
	// or dberr.ErrNotFound when no such account exists.
	FindByLogin(ctx context.Context, login string) (*Principal, error)
}
