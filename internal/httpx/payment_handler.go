package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/shuddhindia/storefront-api/internal/orders"
	"github.com/shuddhindia/storefront-api/internal/payment"
	"github.com/shuddhindia/storefront-api/internal/redisx"
)

type PaymentHandler struct {
	Gateway  payment.Gateway
	Verifier payment.Verifier
	Orders   *orders.Service
	Redis    *redis.Client
	Auth     Auth
}

func (h *PaymentHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(h.Auth.RequireUser)
		r.Post("/payment/create-order", h.createOrder)
		r.Post("/payment/verify", h.verify)
	})
}

func (h *PaymentHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AmountPaise int64 `json:"amount_paise"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AmountPaise <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "amount_paise required"})
		return
	}
	receipt := fmt.Sprintf("receipt_%d", time.Now().UnixMilli())
	intent, err := h.Gateway.CreateIntent(r.Context(), req.AmountPaise, receipt)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, intent)
}

type verifyReq struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	Signature        string `json:"razorpay_signature"`
	OrderID          string `json:"order_id"`
}

func (h *PaymentHandler) verify(w http.ResponseWriter, r *http.Request) {
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	if !h.Verifier.Verify(req.GatewayOrderID, req.GatewayPaymentID, req.Signature) {
		writeJSON(w, http.StatusOK, map[string]bool{"verified": false})
		return
	}

	if req.OrderID != "" && h.firstCallback(r, req.GatewayPaymentID) {
		if _, err := h.Orders.MarkPaid(r.Context(), req.OrderID, req.GatewayPaymentID); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

// firstCallback reports whether this gateway payment id has not been applied
// yet, so replayed callbacks do not re-mark the order or re-emit events.
func (h *PaymentHandler) firstCallback(r *http.Request, paymentID string) bool {
	if h.Redis == nil {
		return true
	}
	key := fmt.Sprintf(redisx.KeyPaymentSeen, paymentID)
	ok, err := h.Redis.SetNX(r.Context(), key, "1", redisx.TTLPaymentSeen).Result()
	if err != nil {
		return true // cache down is no reason to drop a payment
	}
	return ok
}
