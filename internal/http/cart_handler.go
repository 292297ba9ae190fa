package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Baooooooo0/Drinking-App/internal/cart"
	"github.com/Baooooooo0/Drinking-App/internal/domain"
)

type CartHandler struct {
	manager *cart.Manager
}

func NewCartHandler(manager *cart.Manager) *CartHandler {
	return &CartHandler{manager: manager}
}

type AddItemRequestDTO struct {
	Name    string  `json:"name"`
	Price   float64 `json:"price"`
	Variant string  `json:"variant,omitempty"`
}

type SetQuantityRequestDTO struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Variant  string  `json:"variant,omitempty"`
	Quantity int     `json:"quantity"`
}

type CartResponse struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
}

type HistoryResponse struct {
	Orders []domain.Order `json:"orders"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeItemRef(w, r)
	if !ok {
		return
	}

	h.manager.AddItem(r.Context(), domain.LineItem{
		Name:    ref.Name,
		Price:   ref.Price,
		Variant: ref.Variant,
		// Adding always means one more unit
		Quantity: 1,
	})

	respondJSON(w, http.StatusCreated, h.cartResponse())
}

func (h *CartHandler) IncreaseQuantity(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeItemRef(w, r)
	if !ok {
		return
	}

	h.manager.IncreaseQuantity(r.Context(), refKey(ref))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) DecreaseQuantity(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeItemRef(w, r)
	if !ok {
		return
	}

	h.manager.DecreaseQuantity(r.Context(), refKey(ref))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ref, ok := decodeItemRef(w, r)
	if !ok {
		return
	}

	h.manager.RemoveItem(r.Context(), refKey(ref))
	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return
	}

	key := domain.ItemKey{Name: req.Name, Price: req.Price, Variant: req.Variant}
	if err := h.manager.SetQuantity(r.Context(), key, req.Quantity); err != nil {
		if errors.Is(err, cart.ErrInvalidQuantity) {
			respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be at least 1")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, h.cartResponse())
}

func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	order, err := h.manager.Checkout(r.Context())
	if err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			respondError(w, http.StatusConflict, "empty_cart", "cart is empty, nothing to checkout")
			return
		}
		log.Printf("checkout failed request_id=%s: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not persist the order")
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HistoryResponse{Orders: h.manager.History()})
}

func (h *CartHandler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.ClearHistory(r.Context()); err != nil {
		log.Printf("clear history failed request_id=%s: %v", getRequestID(r.Context()), err)
		respondError(w, http.StatusServiceUnavailable, "service_unavailable", "could not persist the change")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) cartResponse() CartResponse {
	return CartResponse{
		Items: h.manager.Items(),
		Total: h.manager.Total(),
	}
}

func decodeItemRef(w http.ResponseWriter, r *http.Request) (AddItemRequestDTO, bool) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return req, false
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_name", "name is required")
		return req, false
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "invalid_price", "price must not be negative")
		return req, false
	}
	return req, true
}

func refKey(ref AddItemRequestDTO) domain.ItemKey {
	return domain.ItemKey{Name: ref.Name, Price: ref.Price, Variant: ref.Variant}
}
