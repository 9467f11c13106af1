package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/coupon"
)

type CouponsHandler struct {
	Coupons *coupon.Repo
	Auth    Auth
}

func (h *CouponsHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Post("/coupons/apply", h.apply)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Post("/coupons", h.create)
		r.Get("/coupons", h.list)
		r.Delete("/coupons/{id}", h.delete)
	})
}

// apply is the checkout preview: it reports the discount but does not
// consume a use. Consumption happens at order placement.
func (h *CouponsHandler) apply(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "code required"})
		return
	}
	c, err := h.Coupons.Validate(r.Context(), req.Code, claimsFrom(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"code":             c.Code,
		"discount_percent": c.DiscountPercent,
	})
}

func (h *CouponsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code            string    `json:"code"`
		DiscountPercent int       `json:"discount_percent"`
		ExpiresAt       time.Time `json:"expires_at"`
		UsageLimit      int       `json:"usage_limit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	c, err := h.Coupons.Create(r.Context(), req.Code, req.DiscountPercent, req.ExpiresAt, req.UsageLimit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CouponsHandler) list(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Coupons.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *CouponsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Coupons.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "coupon deleted"})
}
