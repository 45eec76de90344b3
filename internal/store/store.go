package store

import (
	"context"
	"errors"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
)

var ErrNotFound = errors.New("cart not found")

// Store persists the full cart blob under an opaque session key. Save always
// overwrites the previous blob; there is no partial update.
type Store interface {
	Load(ctx context.Context, key string) (*domain.Cart, error)
	Save(ctx context.Context, key string, cart *domain.Cart) error
	Delete(ctx context.Context, key string) error
	Close() error
}
