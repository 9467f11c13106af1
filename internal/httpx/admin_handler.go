package httpx

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/catalog"
	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/users"
)

type AdminHandler struct {
	Orders  *orders.Repo
	Catalog *catalog.Repo
	Users   *users.Repo
	Auth    Auth
}

func (h *AdminHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Get("/admin/stats", h.stats)
		r.Get("/admin/orders", h.listOrders)
		r.Get("/admin/users", h.listUsers)
		r.Get("/admin/reviews", h.listReviews)
		r.Delete("/admin/reviews/{id}", h.deleteReview)
	})
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	os, err := h.Orders.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	products, err := h.Catalog.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	userCount, err := h.Users.Count(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"total_orders":   os.TotalOrders,
		"revenue_paise":  os.RevenuePaise,
		"total_products": products,
		"total_users":    userCount,
	})
}

func (h *AdminHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	os, err := h.Orders.ListAll(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	us, err := h.Users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, us)
}

func (h *AdminHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	revs, err := h.Catalog.ListAllReviews(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revs)
}

func (h *AdminHandler) deleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "review deleted"})
}
