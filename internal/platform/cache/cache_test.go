// Copyright (c) 2026 Raduga Center. All rights reserved.

package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raduga-center/raduga/internal/platform/cache"
)

/*
TestKey_Deterministic verifies that the same logical invocation always
produces the same key.
*/
func TestKey_Deterministic(t *testing.T) {
	first := cache.Key("patients", "get_by_id", cache.A("id", 42))
	second := cache.Key("patients", "get_by_id", cache.A("id", 42))

	assert.Equal(t, first, second)
	assert.Equal(t, "raduga:cache:patients:get_by_id:id:42", first)
}

/*
TestKey_Distinct verifies that namespace, operation, and argument values all
contribute to the key.
*/
func TestKey_Distinct(t *testing.T) {
	base := cache.Key("patients", "get_by_id", cache.A("id", 1))

	assert.NotEqual(t, base, cache.Key("documents", "get_by_id", cache.A("id", 1)))
	assert.NotEqual(t, base, cache.Key("patients", "download", cache.A("id", 1)))
	assert.NotEqual(t, base, cache.Key("patients", "get_by_id", cache.A("id", 2)))
}

/*
TestKey_ListCollapses verifies that argument-free list calls share a single key.
*/
func TestKey_ListCollapses(t *testing.T) {
	assert.Equal(t, cache.Key("patients", "list"), cache.Key("patients", "list"))
	assert.Equal(t, "raduga:cache:patients:list", cache.Key("patients", "list"))
}

/*
TestKey_Whitespace verifies that whitespace in values never leaks into keys.
*/
func TestKey_Whitespace(t *testing.T) {
	key := cache.Key("documents", "by_category", cache.A("name", "План работы"))

	assert.NotContains(t, key, " ")
	assert.Contains(t, key, "План_работы")
}

/*
TestStore_NilSafety verifies that a nil store behaves as a permanent miss
instead of panicking. Handlers are wired with a nil cache in tests.
*/
func TestStore_NilSafety(t *testing.T) {
	var store *cache.Store

	store.Set(context.Background(), "k", []byte("v"))
	payload, hit := store.Get(context.Background(), "k")

	assert.False(t, hit)
	assert.Nil(t, payload)
}
