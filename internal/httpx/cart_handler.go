package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/cart"
)

type CartHandler struct {
	Carts *cart.Repo
	Auth  Auth
}

func (h *CartHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Get("/cart", h.get)
		r.Post("/cart/items", h.upsertLine)
		r.Put("/cart/items/{productID}", h.setQuantity)
		r.Delete("/cart/items/{productID}", h.removeLine)
		r.Delete("/cart", h.clear)
	})
}

func (h *CartHandler) get(w http.ResponseWriter, r *http.Request) {
	v, err := h.Carts.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *CartHandler) upsertLine(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "product_id required"})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	uid := claimsFrom(r).UserID
	if err := h.Carts.UpsertLine(r.Context(), uid, req.ProductID, req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.respondWithCart(w, r, uid)
}

func (h *CartHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	uid := claimsFrom(r).UserID
	if err := h.Carts.SetLineQuantity(r.Context(), uid, chi.URLParam(r, "productID"), req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	h.respondWithCart(w, r, uid)
}

func (h *CartHandler) removeLine(w http.ResponseWriter, r *http.Request) {
	uid := claimsFrom(r).UserID
	if err := h.Carts.RemoveLine(r.Context(), uid, chi.URLParam(r, "productID")); err != nil {
		writeError(w, err)
		return
	}
	h.respondWithCart(w, r, uid)
}

func (h *CartHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), claimsFrom(r).UserID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "cart cleared"})
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, userID string) {
	v, err := h.Carts.Get(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
