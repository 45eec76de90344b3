package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter assembles the cart API surface.
func NewRouter(handler *CartHandler, metrics *Metrics, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	if metrics != nil {
		r.Use(metrics.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/cart", func(r chi.Router) {
		r.Use(SessionMiddleware)

		r.Get("/", handler.GetCart)
		r.Delete("/", handler.ClearCart)
		r.Get("/count", handler.GetCount)
		r.Post("/items", handler.AddItem)
		r.Put("/items/{productID}", handler.UpdateQuantity)
		r.Delete("/items/{productID}", handler.RemoveItem)
	})

	return r
}
