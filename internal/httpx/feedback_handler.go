package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/feedback"
	"github.com/shuddhindia/storefront-api/internal/support"
	"github.com/shuddhindia/storefront-api/internal/users"
)

type FeedbackHandler struct {
	Feedback *feedback.Repo
	Support  *support.Repo
	Users    *users.Repo
	Auth     Auth
}

func (h *FeedbackHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Post("/feedback", h.submitFeedback)
		r.Post("/support", h.submitSupport)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireAdmin)
		r.Get("/admin/feedback", h.listFeedback)
		r.Delete("/admin/feedback/{id}", h.deleteFeedback)
		r.Get("/admin/support", h.listSupport)
	})
}

func (h *FeedbackHandler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
		Rating  int    `json:"rating"`
		OrderID string `json:"order_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	uid := claimsFrom(r).UserID
	if req.Name == "" || req.Email == "" {
		if u, err := h.Users.Get(r.Context(), uid); err == nil {
			if req.Name == "" {
				req.Name = u.Name
			}
			if req.Email == "" {
				req.Email = u.Email
			}
		}
	}
	if req.Name == "" {
		req.Name = "Anonymous"
	}
	f, err := h.Feedback.Create(r.Context(), feedback.Feedback{
		UserID:  uid,
		OrderID: req.OrderID,
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Rating:  req.Rating,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FeedbackHandler) listFeedback(w http.ResponseWriter, r *http.Request) {
	fs, err := h.Feedback.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

func (h *FeedbackHandler) deleteFeedback(w http.ResponseWriter, r *http.Request) {
	if err := h.Feedback.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"msg": "feedback deleted"})
}

func (h *FeedbackHandler) submitSupport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	m, err := h.Support.Create(r.Context(), claimsFrom(r).UserID, req.Text)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, m)
}

func (h *FeedbackHandler) listSupport(w http.ResponseWriter, r *http.Request) {
	ms, err := h.Support.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ms)
}
