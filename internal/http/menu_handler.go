package http

import (
	"errors"
	"net/http"

	"github.com/Baooooooo0/Drinking-App/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type MenuHandler struct {
	catalog *catalog.Service
}

func NewMenuHandler(svc *catalog.Service) *MenuHandler {
	return &MenuHandler{catalog: svc}
}

func (h *MenuHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not load the menu")
		return
	}
	respondJSON(w, http.StatusOK, categories)
}

func (h *MenuHandler) ListDrinks(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category")

	drinks, err := h.catalog.Drinks(r.Context(), categoryID)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not load the menu")
		return
	}
	respondJSON(w, http.StatusOK, drinks)
}

func (h *MenuHandler) GetDrink(w http.ResponseWriter, r *http.Request) {
	drinkID := chi.URLParam(r, "drink_id")
	if drinkID == "" {
		respondError(w, http.StatusBadRequest, "invalid_drink_id", "drink id is required")
		return
	}

	drink, err := h.catalog.Drink(r.Context(), drinkID)
	if err != nil {
		if errors.Is(err, catalog.ErrDrinkNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "drink not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not load the menu")
		return
	}
	respondJSON(w, http.StatusOK, drink)
}
