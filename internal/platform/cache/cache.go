// Copyright (c) 2026 Raduga Center. All rights reserved.

/*
Package cache provides the response memoization layer for read endpoints.

It has two halves:

  - Key: a deterministic cache-key builder. Two calls describing the same
    logical operation with the same argument values always collide to the
    same key; any differing value produces a different key.
  - Store: a Redis-backed byte store that is strictly best-effort. A cache
    backend outage degrades every lookup to a miss and every write to a
    no-op; latency suffers, correctness never does.
*/
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raduga-center/raduga/internal/platform/constants"
)

// # Key Builder

// Arg is one named operation argument contributing to the cache identity.
//
// Service handles, sessions, and other runtime objects must never be passed
// as args: they are not part of the logical cache identity.
type Arg struct {
	Name  string
	Value any
}

// A is a shorthand constructor for [Arg].
func A(name string, value any) Arg {
	return Arg{Name: name, Value: value}
}

// Key derives the cache key for an operation invocation.
//
// # Format
//
//	raduga:cache:{namespace}:{operation}[:{arg}:{value}]...
//
// Arguments are appended in declaration order, so every call site of the
// same operation must list them identically. Operations without arguments
// (list-all) collapse to a single shared key. Whitespace is replaced with
// underscores so the result is always a safe Redis key.
func Key(namespace, operation string, args ...Arg) string {
	var builder strings.Builder
	builder.WriteString(constants.CacheNamespacePrefix)
	builder.WriteString(":")
	builder.WriteString(namespace)
	builder.WriteString(":")
	builder.WriteString(operation)

	for _, arg := range args {
		builder.WriteString(":")
		builder.WriteString(arg.Name)
		builder.WriteString(":")
		builder.WriteString(fmt.Sprintf("%v", arg.Value))
	}

	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return '_'
		}
		return r
	}, builder.String())
}

// # Best-Effort Store

// Store wraps a Redis client with fail-open semantics and a fixed TTL.
//
// A nil *Store is valid and behaves as a permanent miss; handler tests use
// that to exercise the uncached path.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore creates a response cache store.
func NewStore(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *Store {
	if ttl <= 0 {
		ttl = constants.DefaultCacheTTL
	}
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Get returns the cached payload for key, or ok=false on miss.
//
// Backend failures are logged and reported as misses.
func (store *Store) Get(ctx context.Context, key string) ([]byte, bool) {
	if store == nil || store.client == nil {
		return nil, false
	}

	payload, err := store.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			store.logger.Warn("cache_get_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return nil, false
	}

	return payload, true
}

// Set stores the payload under key with the configured TTL.
//
// Backend failures are logged and swallowed.
func (store *Store) Set(ctx context.Context, key string, payload []byte) {
	if store == nil || store.client == nil {
		return
	}

	if err := store.client.Set(ctx, key, payload, store.ttl).Err(); err != nil {
		store.logger.Warn("cache_set_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
