package httpx

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shuddhindia/storefront-api/internal/auth"
	"github.com/shuddhindia/storefront-api/internal/users"
)

type AuthHandler struct {
	Users    *users.Repo
	Verifier users.Verifier
	Secret   []byte
	TokenTTL time.Duration
	Auth     Auth
}

func (h *AuthHandler) Register(r *chi.Mux) {
	r.Post("/auth/login", h.login)
	r.Post("/auth/admin/login", h.adminLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Get("/me", h.me)
		r.Put("/me", h.updateMe)
	})
}

func (h *AuthHandler) ttl() time.Duration {
	if h.TokenTTL > 0 {
		return h.TokenTTL
	}
	return 72 * time.Hour
}

type loginResp struct {
	Token string     `json:"token"`
	User  users.User `json:"user"`
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	contact, err := h.Verifier.Verify(r.Context(), req.Token)
	if err != nil {
		writeError(w, err)
		return
	}
	u, err := h.Users.UpsertByContact(r.Context(), contact)
	if err != nil {
		writeError(w, err)
		return
	}
	tok, err := auth.Sign(auth.Claims{UserID: u.ID, IsAdmin: u.IsAdmin}, h.Secret, h.ttl())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Token: tok, User: u})
}

func (h *AuthHandler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	u, err := h.Users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil || !u.IsAdmin {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
		return
	}
	tok, err := auth.Sign(auth.Claims{UserID: u.ID, IsAdmin: true}, h.Secret, h.ttl())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResp{Token: tok, User: u})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	u, err := h.Users.Get(r.Context(), claimsFrom(r).UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *AuthHandler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	uid := claimsFrom(r).UserID
	if err := h.Users.UpdateProfile(r.Context(), uid, req.Name, req.Email); err != nil {
		writeError(w, err)
		return
	}
	u, err := h.Users.Get(r.Context(), uid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
