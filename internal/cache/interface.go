package cache

import (
	"context"
	"time"
)

// Cache is the persistence backend for session state and read-through
// caching. Session carts depend on it being swappable: Redis in production,
// the in-memory implementation in tests.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const (
	ProductKeyPrefix = "product"
	CartKeyPrefix    = "cart"
	OrderKeyPrefix   = "order"
)
