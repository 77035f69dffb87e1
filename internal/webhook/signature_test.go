package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"action":"opened"}`)
	secret := "webhook-secret"

	assert.True(t, VerifySignature(body, sign(body, secret), secret))
	assert.False(t, VerifySignature(body, sign(body, "wrong-secret"), secret))
	assert.False(t, VerifySignature([]byte("tampered"), sign(body, secret), secret))
	assert.False(t, VerifySignature(body, "", secret))
	assert.False(t, VerifySignature(body, "md5=abcdef", secret))
}
