package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

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

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{orders.ErrEmptyCart, http.StatusBadRequest},
		{orders.ErrInvalidAddress, http.StatusBadRequest},
		{cart.ErrInvalidQuantity, http.StatusBadRequest},
		{coupon.ErrExpired, http.StatusBadRequest},
		{coupon.ErrAlreadyUsed, http.StatusBadRequest},
		{coupon.ErrLimitReached, http.StatusBadRequest},
		{feedback.ErrEmptyMessage, http.StatusBadRequest},
		{support.ErrEmptyText, http.StatusBadRequest},
		{feedback.ErrNotFound, http.StatusNotFound},
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{users.ErrIdentityRejected, http.StatusUnauthorized},
		{orders.ErrForbidden, http.StatusForbidden},
		{orders.ErrNotFound, http.StatusNotFound},
		{catalog.ErrNotFound, http.StatusNotFound},
		{coupon.ErrNotFound, http.StatusNotFound},
		{orders.ErrInvalidTransition, http.StatusConflict},
		{payment.ErrGatewayUnavailable, http.StatusBadGateway},
		{errors.New("pg down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, statusFor(tc.err), "%v", tc.err)
	}
}

func TestStatusForWrappedError(t *testing.T) {
	err := fmt.Errorf("create gateway order: %w", payment.ErrGatewayUnavailable)
	assert.Equal(t, http.StatusBadGateway, statusFor(err))
}
