package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/cache"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/store"
)

// Cart is the authoritative state container for one shopper's cart. All
// mutations validate against the product snapshot's stock, recompute the
// derived totals from scratch and persist the full blob before returning.
// The in-memory cart stays authoritative even when persistence fails; a
// full disk must never stop anyone from shopping.
//
// Two processes hydrating the same key each hold an independent copy and
// the last writer to the store wins. No merge is attempted.
type Cart struct {
	key   string
	store store.Store
	cache cache.CartCache
	pub   Publisher
	log   *zap.Logger

	mu   sync.RWMutex
	cur  domain.Cart
	subs []chan domain.Cart
}

func newCart(ctx context.Context, key string, st store.Store, cc cache.CartCache, pub Publisher, log *zap.Logger) *Cart {
	c := &Cart{
		key:   key,
		store: st,
		cache: cc,
		pub:   pub,
		log:   log,
		cur:   domain.Empty(),
	}
	c.hydrate(ctx)
	return c
}

// hydrate loads a prior cart, cache first, then the store. Any failure
// falls back to an empty cart: a corrupt blob must never block startup.
func (c *Cart) hydrate(ctx context.Context) {
	if c.cache != nil {
		cart, err := c.cache.Get(ctx, c.key)
		if err == nil {
			c.cur = domain.Recalculate(cart.Items)
			return
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			c.log.Warn("cart cache get failed", zap.String("cart_key", c.key), zap.Error(err))
		}
	}

	cart, err := c.store.Load(ctx, c.key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Warn("stored cart unreadable, starting empty", zap.String("cart_key", c.key), zap.Error(err))
		}
		c.cur = domain.Empty()
		return
	}

	// Totals are recomputed rather than trusted from the blob.
	c.cur = domain.Recalculate(cart.Items)

	if c.cache != nil {
		hydrated := c.cur.Clone()
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := c.cache.Set(ctx, c.key, &hydrated); err != nil {
				c.log.Warn("cart cache set failed", zap.String("cart_key", c.key), zap.Error(err))
			}
		}()
	}
}

// AddItem puts quantity units of product into the cart. If a line for the
// same product already exists the quantities merge; the price snapshot from
// the first add is preserved and the incoming product is only consulted for
// stock validation. Rejected calls leave the cart untouched.
func (c *Cart) AddItem(ctx context.Context, product domain.ProductSnapshot, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CartItem, len(c.cur.Items))
	copy(items, c.cur.Items)

	if i := c.cur.Find(product.ID); i >= 0 {
		newQuantity := items[i].Quantity + quantity
		if newQuantity > product.Stock {
			return nil, &OutOfStockError{ProductID: product.ID, Available: product.Stock, Unit: product.Unit}
		}
		items[i].Quantity = newQuantity
		items[i].Subtotal = int64(newQuantity) * items[i].Price
	} else {
		if quantity > product.Stock {
			return nil, &OutOfStockError{ProductID: product.ID, Available: product.Stock, Unit: product.Unit}
		}
		items = append(items, domain.CartItem{
			ID:       uuid.NewString(),
			Product:  product,
			Quantity: quantity,
			Price:    product.Price,
			Subtotal: int64(quantity) * product.Price,
		})
	}

	cart := c.commit(ctx, domain.Recalculate(items), Event{Type: EventItemAdded, ProductID: product.ID, Quantity: quantity})
	return cart, nil
}

// UpdateQuantity sets the quantity on the line holding productID. Zero or
// negative behaves as RemoveItem. The preserved price snapshot is used for
// the new subtotal, never a live catalog price.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return c.RemoveItem(ctx, productID)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.cur.Find(productID)
	if i < 0 {
		return nil, ErrItemNotFound
	}

	item := c.cur.Items[i]
	if quantity > item.Product.Stock {
		return nil, &OutOfStockError{ProductID: productID, Available: item.Product.Stock, Unit: item.Product.Unit}
	}

	items := make([]domain.CartItem, len(c.cur.Items))
	copy(items, c.cur.Items)
	items[i].Quantity = quantity
	items[i].Subtotal = int64(quantity) * items[i].Price

	cart := c.commit(ctx, domain.Recalculate(items), Event{Type: EventQuantityUpdated, ProductID: productID, Quantity: quantity})
	return cart, nil
}

// RemoveItem drops the line holding productID. Removing an absent product
// is a no-op, not an error.
func (c *Cart) RemoveItem(ctx context.Context, productID int64) (*domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]domain.CartItem, 0, len(c.cur.Items))
	for _, item := range c.cur.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}

	cart := c.commit(ctx, domain.Recalculate(items), Event{Type: EventItemRemoved, ProductID: productID})
	return cart, nil
}

// Clear resets the cart to empty.
func (c *Cart) Clear(ctx context.Context) (*domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cart := c.commit(ctx, domain.Empty(), Event{Type: EventCartCleared})
	return cart, nil
}

// Snapshot returns a copy of the current cart. Safe to call before any
// mutation; a fresh container is a well-defined empty cart.
func (c *Cart) Snapshot() domain.Cart {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur.Clone()
}

// Count returns total_items, the badge number next to the cart icon.
func (c *Cart) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cur.TotalItems
}

// Subscribe registers for snapshots published after each successful
// mutation. Sends are non-blocking; a subscriber that falls behind misses
// intermediate snapshots and can always poll Snapshot instead.
func (c *Cart) Subscribe() <-chan domain.Cart {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan domain.Cart, 1)
	c.subs = append(c.subs, ch)
	return ch
}

// commit swaps in the new cart, persists it, invalidates the cache and
// notifies subscribers. Persistence and cache failures are logged and
// swallowed. Caller holds the write lock.
func (c *Cart) commit(ctx context.Context, next domain.Cart, ev Event) *domain.Cart {
	c.cur = next

	if err := c.store.Save(ctx, c.key, &next); err != nil {
		c.log.Warn("cart persist failed", zap.String("cart_key", c.key), zap.Error(err))
	}
	c.invalidateCache()

	for _, sub := range c.subs {
		select {
		case sub <- next.Clone():
		default:
		}
	}

	if c.pub != nil {
		ev.CartKey = c.key
		ev.TotalPrice = next.TotalPrice
		ev.At = time.Now().UTC()
		c.pub.Publish(ctx, ev)
	}

	out := next.Clone()
	return &out
}

func (c *Cart) invalidateCache() {
	if c.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.cache.Delete(ctx, c.key); err != nil {
		c.log.Warn("cart cache invalidate failed", zap.String("cart_key", c.key), zap.Error(err))
	}
}
