package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_secret"
	orderID := "order_Nxy123"
	paymentID := "pay_Abc456"

	sig := signPayload(orderID, paymentID, secret)
	assert.True(t, VerifySignature(orderID, paymentID, sig, secret))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	secret := "test_secret"
	sig := signPayload("order_Nxy123", "pay_Abc456", secret)

	assert.False(t, VerifySignature("order_other", "pay_Abc456", sig, secret))
	assert.False(t, VerifySignature("order_Nxy123", "pay_other", sig, secret))
	assert.False(t, VerifySignature("order_Nxy123", "pay_Abc456", sig, "wrong_secret"))
	assert.False(t, VerifySignature("order_Nxy123", "pay_Abc456", "", secret))
}
