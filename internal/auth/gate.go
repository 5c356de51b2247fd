// Copyright (c) 2026 Raduga Center. All rights reserved.

package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/raduga-center/raduga/internal/platform/apperr"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/ctxutil"
	"github.com/raduga-center/raduga/internal/platform/dberr"
	"github.com/raduga-center/raduga/internal/platform/respond"
	"github.com/raduga-center/raduga/internal/platform/sec"
)

// # Authorization Requirements

// Requirement describes who may pass a protected route.
//
// AllowedRoles, when non-empty, is a strict allow-list of role ids.
// MinRoleID, when positive, rejects principals whose role id is below it
// (role id 1 is the administrator, the most privileged tier).
// A zero Requirement admits any authenticated active account.
type Requirement struct {
	AllowedRoles []int64
	MinRoleID    int64
}

// Roles builds an allow-list requirement.
func Roles(ids ...int64) Requirement {
	return Requirement{AllowedRoles: ids}
}

// # Gate

// Gate guards routes with bearer token validation and live role checks.
type Gate struct {
	tokens *sec.TokenService
	store  PrincipalStore
}

// NewGate wires the token codec and the account store.
func NewGate(tokens *sec.TokenService, store PrincipalStore) *Gate {
	return &Gate{tokens: tokens, store: store}
}

// Authenticate validates the Authorization header and stores the decoded
// claims in the request context. It does not touch the database; role and
// activity checks happen in [Gate.Require].
func (gate *Gate) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

		tokenString, err := bearerToken(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		claims, err := gate.tokens.Decode(tokenString)
		if err != nil {
			if errors.Is(err, sec.ErrTokenExpired) {
				respond.Error(writer, request, apperr.Unauthorized("Срок действия токена истек"))
			} else {
				respond.Error(writer, request, apperr.Unauthorized("Недействительный токен"))
			}
			return
		}

		// Refresh tokens never authorize API calls
		if claims.TokenType != constants.TokenTypeAccess {
			respond.Error(writer, request, apperr.Unauthorized("Недействительный токен"))
			return
		}

		ctx := ctxutil.WithClaims(request.Context(), claims)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// Require enforces a role requirement against the live account record.
// The account is re-read from storage on every request, so deactivation
// and role changes apply without waiting for token expiry.
func (gate *Gate) Require(requirement Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			claims := ctxutil.GetClaims(request.Context())
			if claims == nil {
				respond.Error(writer, request, apperr.Unauthorized("Не авторизован"))
				return
			}

			principal, err := gate.store.FindByLogin(request.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, dberr.ErrNotFound) {
					respond.Error(writer, request, apperr.Unauthorized("Не авторизован"))
					return
				}
				respond.Error(writer, request, err)
				return
			}

			if !principal.Active {
				respond.Error(writer, request, apperr.Forbidden("Учетная запись деактивирована"))
				return
			}

			if !requirement.allows(principal.RoleID) {
				respond.Error(writer, request, apperr.Forbidden("Недостаточно прав для выполнения действия"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

func (requirement Requirement) allows(roleID int64) bool {

	if len(requirement.AllowedRoles) > 0 {
		member := false
		for _, allowed := range requirement.AllowedRoles {
			if roleID == allowed {
				member = true
				break
			}
		}
		if !member {
			return false
		}
	}

	if requirement.MinRoleID > 0 && roleID < requirement.MinRoleID {
		return false
	}

	return true
}

// bearerToken extracts the raw JWT from the Authorization header.
func bearerToken(request *http.Request) (string, error) {

	header := request.Header.Get("Authorization")
	if header == "" {
		return "", apperr.Unauthorized("Не авторизован")
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", apperr.Unauthorized("Недействительный токен")
	}

	return token, nil
}
