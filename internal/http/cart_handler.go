package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/catalog"
	"github.com/hoangquang151004/web-ban-thuc-pham-sub000/internal/service"
)

// CatalogClient is what the handlers need from the product catalog.
// Consumers define this interface, not the REST implementation.
type CatalogClient interface {
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
}

type CartHandler struct {
	registry *service.Registry
	catalog  CatalogClient
}

func NewCartHandler(registry *service.Registry, catalogClient CatalogClient) *CartHandler {
	return &CartHandler{
		registry: registry,
		catalog:  catalogClient,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	cart := h.registry.Get(r.Context(), key).Snapshot()
	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	count := h.registry.Get(r.Context(), key).Count()
	respondJSON(w, http.StatusOK, map[string]int{"count": count})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "product not found")
			return
		}
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "failed to validate product")
		return
	}

	cart, err := h.registry.Get(r.Context(), key).AddItem(r.Context(), product.Snapshot(), req.Quantity)
	if err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cart)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.registry.Get(r.Context(), key).UpdateQuantity(r.Context(), productID, req.Quantity)
	if err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	cart, err := h.registry.Get(r.Context(), key).RemoveItem(r.Context(), productID)
	if err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	key := sessionFromContext(r.Context())
	if key == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing cart session")
		return
	}

	cart, err := h.registry.Get(r.Context(), key).Clear(r.Context())
	if err != nil {
		handleCartError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cart)
}

func handleCartError(w http.ResponseWriter, err error) {
	var oos *service.OutOfStockError
	switch {
	case errors.As(err, &oos):
		respondError(w, http.StatusConflict, "out_of_stock",
			fmt.Sprintf("only %d %s left in stock", oos.Available, oos.Unit))
	case errors.Is(err, service.ErrItemNotFound):
		respondError(w, http.StatusNotFound, "item_not_found", "item not found in cart")
	case errors.Is(err, service.ErrInvalidQuantity):
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be positive")
	default:
		respondError(w, http.StatusInternalServerError, "internal", "unexpected error")
	}
}
