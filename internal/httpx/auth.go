package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/shuddhindia/storefront-api/internal/auth"
)

type ctxKey int

const ctxClaims ctxKey = iota

// Auth guards routes with bearer-token middleware.
type Auth struct {
	Secret []byte
}

func (a Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing token"})
			return
		}
		claims, err := auth.Parse(raw, a.Secret)
		if err != nil {
			writeError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxClaims, claims)))
	})
}

func (a Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !claimsFrom(r).IsAdmin {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "admin only"})
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func claimsFrom(r *http.Request) auth.Claims {
	c, _ := r.Context().Value(ctxClaims).(auth.Claims)
	return c
}
