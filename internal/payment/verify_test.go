package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerify(t *testing.T) {
	v := Verifier{Secret: []byte("test-secret")}

	t.Run("valid signature", func(t *testing.T) {
		sig := sign("test-secret", "order_X", "pay_Y")
		assert.True(t, v.Verify("order_X", "pay_Y", sig))
	})

	t.Run("tampered signature", func(t *testing.T) {
		sig := sign("test-secret", "order_X", "pay_Y")
		assert.False(t, v.Verify("order_X", "pay_Y", sig[:len(sig)-1]+"0"))
	})

	t.Run("wrong secret", func(t *testing.T) {
		sig := sign("other-secret", "order_X", "pay_Y")
		assert.False(t, v.Verify("order_X", "pay_Y", sig))
	})

	t.Run("ids swapped", func(t *testing.T) {
		sig := sign("test-secret", "order_X", "pay_Y")
		assert.False(t, v.Verify("pay_Y", "order_X", sig))
	})

	t.Run("empty signature", func(t *testing.T) {
		assert.False(t, v.Verify("order_X", "pay_Y", ""))
	})

	t.Run("empty ids still sign deterministically", func(t *testing.T) {
		sig := sign("test-secret", "", "")
		assert.True(t, v.Verify("", "", sig))
	})
}
