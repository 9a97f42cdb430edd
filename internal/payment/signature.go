package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the gateway signature: HMAC-SHA256 over
// "<gatewayOrderID>|<gatewayPaymentID>" keyed by the shared secret,
// hex encoded.
func Sign(gatewayOrderID, gatewayPaymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// ValidSignature compares the provided signature in constant time.
func ValidSignature(gatewayOrderID, gatewayPaymentID, signature, secret string) bool {
	expected := Sign(gatewayOrderID, gatewayPaymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
