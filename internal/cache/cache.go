// Package cache provides the TTL key/value layer used to memoize aggregate
// query results. Implementations: in-process map (Memory) and Redis.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte values with a per-entry TTL. Get never returns an
// entry whose expiry instant has passed, regardless of physical cleanup.
// Set overwrites any existing entry for the key (last-writer-wins).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
