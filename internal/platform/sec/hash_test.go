// Copyright (c) 2026 Raduga Center. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raduga-center/raduga/internal/platform/sec"
)

/*
TestHashPassword verifies hashing and verification behavior, including the
per-call random salt.
*/
func TestHashPassword(t *testing.T) {
	password := "correct-horse-battery"

	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	// 1. The plaintext never appears in the hash
	assert.NotContains(t, hash, password)

	// 2. Verification accepts the right password and rejects the wrong one
	assert.True(t, sec.CheckPasswordHash(password, hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))

	// 3. A second hash of the same password differs (random salt)
	second, err := sec.HashPassword(password)
	require.NoError(t, err)
	assert.NotEqual(t, hash, second)
	assert.True(t, sec.CheckPasswordHash(password, second))
}
