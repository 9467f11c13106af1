package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shuddhindia/storefront-api/internal/auth"
)

func signFor(t *testing.T, secret []byte, userID string, admin bool) string {
	t.Helper()
	tok, err := auth.Sign(auth.Claims{UserID: userID, IsAdmin: admin}, secret, time.Hour)
	require.NoError(t, err)
	return tok
}

func TestRequireUser(t *testing.T) {
	secret := []byte("test-secret")
	a := Auth{Secret: secret}

	var got auth.Claims
	h := a.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = claimsFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders/my", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/my", nil)
		req.Header.Set("Authorization", "Bearer nope")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token passes claims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/orders/my", nil)
		req.Header.Set("Authorization", "Bearer "+signFor(t, secret, "u-1", false))
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "u-1", got.UserID)
		assert.False(t, got.IsAdmin)
	})
}

func TestRequireAdmin(t *testing.T) {
	secret := []byte("test-secret")
	a := Auth{Secret: secret}
	h := a.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("customer token is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signFor(t, secret, "u-1", false))
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin token passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
		req.Header.Set("Authorization", "Bearer "+signFor(t, secret, "a-1", true))
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("no token is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
