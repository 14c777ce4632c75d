package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxRequestBodySize = 1 << 20 // 1MB

// NewRouter wires the store handlers and the global middleware
func NewRouter(shop Shop, log *zap.Logger, timeout time.Duration) http.Handler {
	h := NewStoreHandler(shop, log)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(MaxBodySize(maxRequestBodySize))

	r.Get("/health", h.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sessions", h.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			r.Delete("/sessions/current", h.EndSession)

			r.Get("/items", h.ListItems)
			r.Get("/items/search", h.Search)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.GetCart)
				r.Delete("/", h.ClearCart)
				r.Post("/items", h.AddItem)
				r.Delete("/items/{name}", h.RemoveItem)
			})

			r.Post("/checkout", h.Checkout)
		})
	})

	return r
}
