package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway opens payment sessions with Razorpay. Amounts are already
// paise, the gateway's minor unit.
type RazorpayGateway struct {
	Client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{Client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateIntent(_ context.Context, amountPaise int64, receipt string) (Intent, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	body, err := g.Client.Order.Create(data, nil)
	if err != nil {
		return Intent{}, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	id, _ := body["id"].(string)
	currency, _ := body["currency"].(string)
	amount := amountPaise
	if f, ok := body["amount"].(float64); ok {
		amount = int64(f)
	}
	if id == "" {
		return Intent{}, fmt.Errorf("%w: gateway response missing order id", ErrGatewayUnavailable)
	}
	return Intent{ID: id, AmountPaise: amount, Currency: currency, Receipt: receipt}, nil
}
