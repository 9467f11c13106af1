package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Verifier checks gateway payment confirmations. The gateway signs
// "<gateway_order_id>|<gateway_payment_id>" with the shared secret.
type Verifier struct {
	Secret []byte
}

// Verify recomputes the hex HMAC-SHA256 and compares in constant time.
// A mismatch is a trust-boundary result, not an error.
func (v Verifier) Verify(gatewayOrderID, gatewayPaymentID, signature string) bool {
	mac := hmac.New(sha256.New, v.Secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
