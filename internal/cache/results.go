// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// results.go provides a Valkey-backed cache for per-user read-endpoint
// results (reminder count, frequent categories). Entries are JSON with a
// short TTL and are busted as a group whenever the owner mutates anything.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// resultKeyPrefix is the Valkey key prefix for cached results.
	resultKeyPrefix = "result:"

	// DefaultResultTTL is how long a cached result stays fresh.
	DefaultResultTTL = 5 * time.Minute
)

// ownerKeys lists every result key an owner can hold. Invalidation deletes
// them all; keeping the set closed avoids SCAN on the hot mutation path.
var ownerKeys = []string{"reminder-count", "frequent-categories"}

// Results manages per-owner result caching in Valkey.
type Results struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResults creates a result cache backed by the given Valkey client.
func NewResults(client *redis.Client, ttl time.Duration) *Results {
	if ttl == 0 {
		ttl = DefaultResultTTL
	}
	return &Results{client: client, ttl: ttl}
}

func resultKey(ownerID int64, name string) string {
	return fmt.Sprintf("%s%d:%s", resultKeyPrefix, ownerID, name)
}

// Get unmarshals a cached result into v. Returns false on miss; cache
// errors are logged and treated as misses.
func (rc *Results) Get(ctx context.Context, ownerID int64, name string, v any) (bool, error) {
	payload, err := rc.client.Get(ctx, resultKey(ownerID, name)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		slog.Warn("result cache get error", "name", name, "error", err)
		return false, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		slog.Warn("result cache decode error", "name", name, "error", err)
		return false, err
	}
	return true, nil
}

// Set stores a result with the configured TTL. Failures are logged, never fatal.
func (rc *Results) Set(ctx context.Context, ownerID int64, name string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		slog.Warn("result cache encode error", "name", name, "error", err)
		return
	}
	if err := rc.client.Set(ctx, resultKey(ownerID, name), payload, rc.ttl).Err(); err != nil {
		slog.Warn("result cache set error", "name", name, "error", err)
	}
}

// InvalidateOwner removes every cached result for the owner.
func (rc *Results) InvalidateOwner(ctx context.Context, ownerID int64) {
	keys := make([]string, len(ownerKeys))
	for i, name := range ownerKeys {
		keys[i] = resultKey(ownerID, name)
	}
	if err := rc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("result cache invalidate error", "owner", ownerID, "error", err)
	}
}
