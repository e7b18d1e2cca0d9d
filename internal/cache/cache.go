package cache

import (
	"context" // Context for store operations
	"time"    // TTL durations
)

// Store is the key-value capability the session layer depends on. It is the
// surface the token registry needs: plain string values with per-key expiry.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)          // Fetch a value; second return is false when the key is absent
	Set(ctx context.Context, key, value string, ttl time.Duration) error // Store a value with a TTL
	Del(ctx context.Context, key string) error                           // Remove a key
	Expire(ctx context.Context, key string, ttl time.Duration) error     // Reset a key's TTL
	Keys(ctx context.Context, pattern string) ([]string, error)          // List keys matching a glob pattern
}
