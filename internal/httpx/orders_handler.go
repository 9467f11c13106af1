package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/orders"
)

type OrdersHandler struct {
	Service *orders.Service
	Cache   OrderStatusCache
	Auth    Auth
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Post("/orders/place", h.place)
		r.Get("/orders/my", h.listMine)
		r.Get("/orders/{id}", h.get)
		r.Get("/orders/{id}/status", h.getStatus)
		r.Delete("/orders/{id}/cancel", h.cancel)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Put("/orders/{id}/ship", h.markShipped)
		r.Put("/orders/{id}/deliver", h.markDelivered)
		r.Put("/orders/{id}/tracking", h.updateTracking)
	})
}

type placeOrderReq struct {
	ShippingAddress orders.Address       `json:"shipping_address"`
	PaymentMethod   orders.PaymentMethod `json:"payment_method"`
	CouponCode      string               `json:"coupon_code"`
}

func (h *OrdersHandler) place(w http.ResponseWriter, r *http.Request) {
	var req placeOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	o, err := h.Service.Place(r.Context(), claimsFrom(r).UserID, req.ShippingAddress, req.PaymentMethod, req.CouponCode)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(r, o)
	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) listMine(w http.ResponseWriter, r *http.Request) {
	os, err := h.Service.ListByUser(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) get(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	o, err := h.Service.Get(r.Context(), chi.URLParam(r, "id"), c.UserID, c.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// getStatus serves the SPA's order polling from cache when it can. Cache
// entries are keyed by owner, so only the owner's reads hit; everyone else
// goes through the store's owner-or-admin check.
func (h *OrdersHandler) getStatus(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	orderID := chi.URLParam(r, "id")
	if h.Cache != nil {
		if s, ok := h.Cache.Read(r.Context(), c.UserID, orderID); ok {
			writeJSON(w, http.StatusOK, map[string]orders.Status{"status": s})
			return
		}
	}

	o, err := h.Service.Get(r.Context(), orderID, c.UserID, c.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(r, o)
	writeJSON(w, http.StatusOK, map[string]orders.Status{"status": o.Status})
}

func (h *OrdersHandler) cancel(w http.ResponseWriter, r *http.Request) {
	c := claimsFrom(r)
	o, err := h.Service.Cancel(r.Context(), chi.URLParam(r, "id"), c.UserID, c.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(r, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) markShipped(w http.ResponseWriter, r *http.Request) {
	o, err := h.Service.MarkShipped(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(r, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) markDelivered(w http.ResponseWriter, r *http.Request) {
	o, err := h.Service.MarkDelivered(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.cacheStatus(r, o)
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) updateTracking(w http.ResponseWriter, r *http.Request) {
	var req orders.Tracking
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	o, err := h.Service.UpdateTracking(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) cacheStatus(r *http.Request, o orders.Order) {
	if h.Cache == nil {
		return
	}
	h.Cache.Write(r.Context(), o.UserID, o.ID, o.Status)
}
