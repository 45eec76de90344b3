package store

import (
	"context"
	"sync"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
)

// MemoryStore implements Store with in-memory storage. Used when no database
// path is configured (carts then live only as long as the process) and as
// the store double in tests.
type MemoryStore struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts: make(map[string]domain.Cart),
	}
}

func (s *MemoryStore) Load(_ context.Context, key string) (*domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[key]
	if !ok {
		return nil, ErrNotFound
	}
	clone := cart.Clone()
	return &clone, nil
}

func (s *MemoryStore) Save(_ context.Context, key string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[key] = cart.Clone()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
