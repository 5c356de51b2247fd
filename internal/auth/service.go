// Copyright (c) 2026 Raduga Center. All rights reserved.

package auth

import (
	"context"
	"errors"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	"github.com/raduga-center/raduga/internal/platform/sec"
)

// # Token Pair

// TokenPair is the payload returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	UserID       int64  `json:"user_id"`
}

// # Service

// Service issues and rotates JWT pairs for staff accounts.
type Service struct {
	store  PrincipalStore
	tokens *sec.TokenService
}

// NewService wires the credential store and the token codec together.
func NewService(store PrincipalStore, tokens *sec.TokenService) *Service {
	return &Service{store: store, tokens: tokens}
}

// Login verifies credentials and issues a fresh token pair.
func (service *Service) Login(ctx context.Context, login, password string) (*TokenPair, error) {

	// 1. Load the account. A missing login and a wrong password must be
	// indistinguishable to the caller.
	principal, err := service.store.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Неверный логин или пароль")
		}
		return nil, err
	}

	// 2. Verify the password against the stored bcrypt hash
	if !sec.CheckPasswordHash(password, principal.PasswordHash) {
		return nil, apperr.Unauthorized("Неверный логин или пароль")
	}

	// 3. Deactivated accounts cannot sign in
	if !principal.Active {
		return nil, apperr.Unauthorized("Учетная запись деактивирована")
	}

	return service.issuePair(principal)
}

// Refresh rotates a valid refresh token into a brand-new pair.
// Both tokens are reissued so a stolen refresh token ages out quickly.
func (service *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {

	// 1. Decode and verify the signature and expiry
	claims, err := service.tokens.Decode(refreshToken)
	if err != nil {
		if errors.Is(err, sec.ErrTokenExpired) {
			return nil, apperr.Unauthorized("Срок действия токена истек")
		}
		return nil, apperr.Unauthorized("Недействительный токен")
	}

	// 2. Access tokens are not accepted here
	if claims.TokenType != constants.TokenTypeRefresh {
		return nil, apperr.Unauthorized("Недействительный токен")
	}

	// 3. Re-read the live account so revoked users lose their session
	principal, err := service.store.FindByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, dberr.ErrNotFound) {
			return nil, apperr.Unauthorized("Недействительный токен")
		}
		return nil, err
	}

	if !principal.Active {
		return nil, apperr.Unauthorized("Учетная запись деактивирована")
	}

	return service.issuePair(principal)
}

func (service *Service) issuePair(principal *Principal) (*TokenPair, error) {

	accessToken, err := service.tokens.Encode(
		principal.Login, principal.ID, principal.RoleID,
		constants.TokenTypeAccess, constants.AccessTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	// Refresh tokens carry only the subject and the type tag.
	refreshToken, err := service.tokens.Encode(
		principal.Login, 0, 0,
		constants.TokenTypeRefresh, constants.RefreshTokenTTL,
	)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		UserID:       principal.ID,
	}, nil
}
