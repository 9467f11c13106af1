package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/catalog"
	"github.com/shuddhindia/storefront-api/internal/users"
)

type ProductsHandler struct {
	Catalog *catalog.Repo
	Users   *users.Repo
	Auth    Auth
}

func (h *ProductsHandler) Register(r *chi.Mux) {
	r.Get("/products", h.list)
	r.Get("/products/{id}", h.get)
	r.Get("/products/{id}/reviews", h.listReviews)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Post("/products/{id}/reviews", h.addReview)
	})

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Post("/products", h.create)
		r.Put("/products/{id}", h.update)
		r.Delete("/products/{id}", h.delete)
	})
}

type productReq struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	PricePaise   int64    `json:"price_paise"`
	Images       []string `json:"images"`
	CountInStock int      `json:"count_in_stock"`
}

func (h *ProductsHandler) list(w http.ResponseWriter, r *http.Request) {
	ps, err := h.Catalog.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *ProductsHandler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	p, err := h.Catalog.Create(r.Context(), catalog.Product{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		PricePaise:   req.PricePaise,
		Images:       req.Images,
		CountInStock: req.CountInStock,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *ProductsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	id := chi.URLParam(r, "id")
	if err := h.Catalog.Update(r.Context(), catalog.Product{
		ID:           id,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		PricePaise:   req.PricePaise,
		Images:       req.Images,
		CountInStock: req.CountInStock,
	}); err != nil {
		writeError(w, err)
		return
	}
	p, err := h.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *ProductsHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "product deleted"})
}

func (h *ProductsHandler) listReviews(w http.ResponseWriter, r *http.Request) {
	revs, err := h.Catalog.ListReviews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, revs)
}

func (h *ProductsHandler) addReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	u, err := h.Users.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	name := u.Name
	if name == "" {
		name = u.PhoneOrEmail
	}
	rev, err := h.Catalog.UpsertReview(r.Context(), catalog.Review{
		ProductID:    chi.URLParam(r, "id"),
		UserID:       u.ID,
		ReviewerName: name,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rev)
}
