package payment

import (
	"context"
	"errors"
)

var ErrGatewayUnavailable = errors.New("payment gateway unavailable")

// Intent is a gateway-side payment session the client completes later.
type Intent struct {
	ID          string `json:"id"`
	AmountPaise int64  `json:"amount_paise"`
	Currency    string `json:"currency"`
	Receipt     string `json:"receipt"`
}

type Gateway interface {
	CreateIntent(ctx context.Context, amountPaise int64, receipt string) (Intent, error)
}
