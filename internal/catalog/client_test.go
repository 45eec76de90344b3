package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProduct_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/1/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": 1,
			"name": "Rau muống",
			"slug": "rau-muong",
			"price": 25000,
			"old_price": 30000,
			"main_image_url": "http://cdn.local/rau-muong.jpg",
			"stock": 150,
			"unit": "kg",
			"category_name": "Rau củ"
		}`)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	product, err := client.GetProduct(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), product.ID)
	assert.Equal(t, "Rau muống", product.Name)
	assert.Equal(t, int64(25000), product.Price)
	assert.Equal(t, 150, product.Stock)
	assert.Equal(t, "kg", product.Unit)

	snap := product.Snapshot()
	assert.Equal(t, product.ID, snap.ID)
	assert.Equal(t, product.Price, snap.Price)
	assert.Equal(t, product.Stock, snap.Stock)
	assert.Equal(t, "Rau củ", snap.CategoryName)
}

func TestGetProduct_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	_, err := client.GetProduct(context.Background(), 42)

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestGetProduct_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	_, err := client.GetProduct(context.Background(), 1)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
}

func TestGetProduct_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/api")
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := client.GetProduct(ctx, 1)
		require.Error(t, err)
	}

	_, err := client.GetProduct(ctx, 1)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}
