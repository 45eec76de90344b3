package service

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/cache"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/store"
)

// Registry hands out one Cart container per session key, constructed and
// hydrated on first use. Singleflight prevents a burst of first requests
// for the same key from hydrating more than once.
type Registry struct {
	store store.Store
	cache cache.CartCache
	pub   Publisher
	log   *zap.Logger

	mu    sync.RWMutex
	carts map[string]*Cart
	sfg   singleflight.Group
}

func NewRegistry(st store.Store, cc cache.CartCache, pub Publisher, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		store: st,
		cache: cc,
		pub:   pub,
		log:   log,
		carts: make(map[string]*Cart),
	}
}

func (r *Registry) Get(ctx context.Context, key string) *Cart {
	r.mu.RLock()
	c, ok := r.carts[key]
	r.mu.RUnlock()
	if ok {
		return c
	}

	v, _, _ := r.sfg.Do(key, func() (interface{}, error) {
		r.mu.RLock()
		existing, ok := r.carts[key]
		r.mu.RUnlock()
		if ok {
			return existing, nil
		}

		cart := newCart(ctx, key, r.store, r.cache, r.pub, r.log)

		r.mu.Lock()
		r.carts[key] = cart
		r.mu.Unlock()
		return cart, nil
	})

	return v.(*Cart)
}
