package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	cart := testCart()

	require.NoError(t, s.Save(ctx, "sess-1", cart))

	loaded, err := s.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, cart, loaded)

	// The stored copy must not alias the caller's slice.
	cart.Items[0].Quantity = 99
	reloaded, err := s.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Items[0].Quantity)
}

func TestMemory_LoadMissing(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", testCart()))
	require.NoError(t, s.Delete(ctx, "sess-1"))

	_, err := s.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
