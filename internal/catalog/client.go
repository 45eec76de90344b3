package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// StatusError is an unexpected response status from the catalog backend.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog returned status %d", e.Code)
}

// Product is the catalog representation consumed from the backend. Only id,
// name, price, stock and unit are required; the rest is display data passed
// through opaquely.
type Product struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Price        int64  `json:"price"`
	OldPrice     int64  `json:"old_price"`
	ImageURL     string `json:"main_image_url"`
	Stock        int    `json:"stock"`
	Unit         string `json:"unit"`
	CategoryName string `json:"category_name"`
}

// Snapshot freezes the catalog fields a cart line item keeps.
func (p Product) Snapshot() domain.ProductSnapshot {
	return domain.ProductSnapshot{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Price:        p.Price,
		OldPrice:     p.OldPrice,
		ImageURL:     p.ImageURL,
		Stock:        p.Stock,
		Unit:         p.Unit,
		CategoryName: p.CategoryName,
	}
}

// Client consumes the product catalog REST API. Calls go through a circuit
// breaker so a struggling backend fails fast instead of tying up request
// handlers.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker[*Product]
}

func NewClient(baseURL string) *Client {
	cb := gobreaker.NewCircuitBreaker[*Product](gobreaker.Settings{
		Name:    "product-catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A missing product is an answer, not a backend failure.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProductNotFound)
		},
	})

	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   10 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cb: cb,
	}
}

// GetProduct fetches a single product by id. Returns ErrProductNotFound for
// a 404; 404s do not count against the breaker.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	return c.cb.Execute(func() (*Product, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/products/%d/", c.baseURL, id), nil)
		if err != nil {
			return nil, fmt.Errorf("build catalog request: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrProductNotFound
		case resp.StatusCode != http.StatusOK:
			return nil, &StatusError{Code: resp.StatusCode}
		}

		var product Product
		if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}

		return &product, nil
	})
}
