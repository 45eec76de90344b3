package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
)

func setupSQLite(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "carts.db"))
	require.NoError(t, err)
	require.NoError(t, s.RunMigrations(filepath.Join("..", "..", "migrations")))

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Logf("failed to close store: %s", err)
		}
	})
	return s
}

func testCart() *domain.Cart {
	cart := domain.Recalculate([]domain.CartItem{
		{
			ID: "line-1",
			Product: domain.ProductSnapshot{
				ID: 1, Name: "Rau muống", Slug: "rau-muong",
				Price: 25000, OldPrice: 30000, Stock: 150,
				Unit: "kg", CategoryName: "Rau củ",
			},
			Quantity: 2,
			Price:    25000,
			Subtotal: 50000,
		},
		{
			ID:       "line-2",
			Product:  domain.ProductSnapshot{ID: 2, Name: "Trứng gà ta", Price: 65000, Stock: 10, Unit: "hộp"},
			Quantity: 1,
			Price:    65000,
			Subtotal: 65000,
		},
	})
	return &cart
}

func TestSQLite_Load_NotFound(t *testing.T) {
	s := setupSQLite(t)

	cart, err := s.Load(context.Background(), "nonexistent")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, cart)
}

func TestSQLite_RoundTrip(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()
	cart := testCart()

	require.NoError(t, s.Save(ctx, "sess-1", cart))

	// Simulates a page-reload hydration: the loaded cart must equal the
	// saved one exactly.
	loaded, err := s.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, cart, loaded)
}

func TestSQLite_SaveOverwrites(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", testCart()))

	empty := domain.Empty()
	require.NoError(t, s.Save(ctx, "sess-1", &empty))

	loaded, err := s.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, loaded.Items)
	assert.Equal(t, 0, loaded.TotalItems)
}

func TestSQLite_Delete(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", testCart()))
	require.NoError(t, s.Delete(ctx, "sess-1"))

	_, err := s.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine.
	assert.NoError(t, s.Delete(ctx, "sess-1"))
}

func TestSQLite_KeysAreIsolated(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sess-1", testCart()))

	_, err := s.Load(ctx, "sess-2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLite_CorruptBlob(t *testing.T) {
	s := setupSQLite(t)
	ctx := context.Background()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO carts (key, blob, updated_at) VALUES (?, ?, ?)`,
		"sess-1", "{not json", time.Now().UTC())
	require.NoError(t, err)

	cart, err := s.Load(ctx, "sess-1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, cart)
}
