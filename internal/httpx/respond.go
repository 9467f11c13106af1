package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shuddhindia/storefront-api/internal/auth"
	"github.com/shuddhindia/storefront-api/internal/cart"
	"github.com/shuddhindia/storefront-api/internal/catalog"
	"github.com/shuddhindia/storefront-api/internal/coupon"
	"github.com/shuddhindia/storefront-api/internal/feedback"
	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/payment"
	"github.com/shuddhindia/storefront-api/internal/support"
	"github.com/shuddhindia/storefront-api/internal/users"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrInvalidAddress),
		errors.Is(err, orders.ErrInvalidPayment),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, catalog.ErrInvalidProduct),
		errors.Is(err, catalog.ErrInvalidRating),
		errors.Is(err, coupon.ErrInvalidCode),
		errors.Is(err, coupon.ErrDuplicate),
		errors.Is(err, coupon.ErrExpired),
		errors.Is(err, coupon.ErrAlreadyUsed),
		errors.Is(err, coupon.ErrLimitReached),
		errors.Is(err, feedback.ErrEmptyMessage),
		errors.Is(err, support.ErrEmptyText):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, users.ErrIdentityRejected):
		return http.StatusUnauthorized
	case errors.Is(err, orders.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, cart.ErrLineNotFound),
		errors.Is(err, coupon.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, catalog.ErrReviewNotFound),
		errors.Is(err, feedback.ErrNotFound),
		errors.Is(err, users.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, orders.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
