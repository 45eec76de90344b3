package cache

import (
	"context"
	"errors"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
)

// CartCache is a read-through cache for cart snapshots, keyed by session.
// Consumers define this interface, not the Redis implementation.
type CartCache interface {
	Get(ctx context.Context, key string) (*domain.Cart, error)
	Set(ctx context.Context, key string, cart *domain.Cart) error
	Delete(ctx context.Context, key string) error
}

var ErrCacheMiss = errors.New("cache miss")
