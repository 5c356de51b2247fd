// Copyright (c) 2026 Raduga Center. All rights reserved.

package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/auth"
	"github.com/raduga-center/raduga/internal/platform/constants"
	"github.com/raduga-center/raduga/internal/platform/ctxutil"
	"github.com/raduga-center/raduga/internal/platform/sec"
)

type gateFixture struct {
	gate   *auth.Gate
	store  *fakeStore
	tokens *sec.TokenService
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := sec.NewTokenServiceFromKeys(key, constants.AuthIssuer)

	store := &fakeStore{accounts: map[string]*auth.Principal{
		"admin":      {ID: 1, Login: "admin", RoleID: constants.RoleAdministrator, Active: true},
		"specialist": {ID: 3, Login: "specialist", RoleID: constants.RoleSpecialist, Active: true},
	}}

	return &gateFixture{
		gate:   auth.NewGate(tokens, store),
		store:  store,
		tokens: tokens,
	}
}

// call runs a request through Authenticate plus Require and reports the
// resulting status code.
func (fixture *gateFixture) call(t *testing.T, token string, requirement auth.Requirement) int {
	t.Helper()

	var handler http.Handler = http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.NotNil(t, ctxutil.GetClaims(request.Context()))
		writer.WriteHeader(http.StatusOK)
	})
	handler = fixture.gate.Require(requirement)(handler)
	handler = fixture.gate.Authenticate(handler)

	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder.Code
}

func (fixture *gateFixture) token(t *testing.T, login string, tokenType string) string {
	t.Helper()

	principal := fixture.store.accounts[login]
	token, err := fixture.tokens.Encode(login, principal.ID, principal.RoleID, tokenType, time.Minute)
	require.NoError(t, err)
	return token
}

/*
TestGate_AllowList covers the role allow-list across tiers.
*/
func TestGate_AllowList(t *testing.T) {
	fixture := newGateFixture(t)
	adminOnly := auth.Roles(constants.RoleAdministrator)

	adminToken := fixture.token(t, "admin", constants.TokenTypeAccess)
	specialistToken := fixture.token(t, "specialist", constants.TokenTypeAccess)

	assert.Equal(t, http.StatusOK, fixture.call(t, adminToken, adminOnly))
	assert.Equal(t, http.StatusForbidden, fixture.call(t, specialistToken, adminOnly))

	// An empty requirement admits any authenticated active account.
	assert.Equal(t, http.StatusOK, fixture.call(t, specialistToken, auth.Requirement{}))
}

/*
TestGate_MinRole verifies the threshold check: principals below the minimum
role id are rejected.
*/
func TestGate_MinRole(t *testing.T) {
	fixture := newGateFixture(t)
	threshold := auth.Requirement{MinRoleID: constants.RoleMethodologist}

	// Administrator has role id 1, below the methodologist threshold of 2.
	assert.Equal(t, http.StatusForbidden,
		fixture.call(t, fixture.token(t, "admin", constants.TokenTypeAccess), threshold))
	assert.Equal(t, http.StatusOK,
		fixture.call(t, fixture.token(t, "specialist", constants.TokenTypeAccess), threshold))
}

/*
TestGate_MissingOrBrokenToken verifies the 401 paths before any role logic.
*/
func TestGate_MissingOrBrokenToken(t *testing.T) {
	fixture := newGateFixture(t)

	assert.Equal(t, http.StatusUnauthorized, fixture.call(t, "", auth.Requirement{}))
	assert.Equal(t, http.StatusUnauthorized, fixture.call(t, "garbage", auth.Requirement{}))
}

/*
TestGate_RefreshTokenRejected verifies that refresh tokens never authorize
API calls.
*/
func TestGate_RefreshTokenRejected(t *testing.T) {
	fixture := newGateFixture(t)

	refreshToken := fixture.token(t, "admin", constants.TokenTypeRefresh)
	assert.Equal(t, http.StatusUnauthorized, fixture.call(t, refreshToken, auth.Requirement{}))
}

/*
TestGate_LiveDeactivation verifies that the gate re-reads the account on
every request: a valid token stops working the moment the account is
deactivated or removed.
*/
func TestGate_LiveDeactivation(t *testing.T) {
	fixture := newGateFixture(t)
	token := fixture.token(t, "specialist", constants.TokenTypeAccess)

	assert.Equal(t, http.StatusOK, fixture.call(t, token, auth.Requirement{}))

	fixture.store.accounts["specialist"].Active = false
	assert.Equal(t, http.StatusForbidden, fixture.call(t, token, auth.Requirement{}))

	delete(fixture.store.accounts, "specialist")
	assert.Equal(t, http.StatusUnauthorized, fixture.call(t, token, auth.Requirement{}))
}

/*
TestGate_ExpiredToken verifies the expiry path through the middleware.
*/
func TestGate_ExpiredToken(t *testing.T) {
	fixture := newGateFixture(t)

	expired, err := fixture.tokens.Encode("admin", 1, 1, constants.TokenTypeAccess, -time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, fixture.call(t, expired, auth.Requirement{}))
}
