package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cartHandler *CartHandler, menuHandler *MenuHandler, timeout time.Duration) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(timeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/categories", menuHandler.ListCategories)
			r.Get("/drinks", menuHandler.ListDrinks)
			r.Get("/drinks/{drink_id}", menuHandler.GetDrink)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Post("/items/increase", cartHandler.IncreaseQuantity)
			r.Post("/items/decrease", cartHandler.DecreaseQuantity)
			r.Post("/items/remove", cartHandler.RemoveItem)
			r.Put("/items/quantity", cartHandler.SetQuantity)
			r.Post("/checkout", cartHandler.Checkout)
		})

		r.Route("/history", func(r chi.Router) {
			r.Get("/", cartHandler.GetHistory)
			r.Delete("/", cartHandler.ClearHistory)
		})
	})

	return r
}
