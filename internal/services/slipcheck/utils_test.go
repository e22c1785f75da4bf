package slipcheck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHmac256_Deterministic(t *testing.T) {
	key := []byte("test-key")
	body := []byte(`{"requestId":"1","slipUrl":"https://slips.example.edu/a.jpg"}`)

	sig := Hmac256(body, key)
	assert.Len(t, sig, 64) // sha256 hex
	assert.Equal(t, sig, Hmac256(body, key))
	assert.NotEqual(t, sig, Hmac256(body, []byte("other-key")))
}

func TestVerifySignature(t *testing.T) {
	key := []byte("test-key")
	body := []byte(`{"reference":"ABCD"}`)

	sig := Hmac256(body, key)
	assert.True(t, VerifySignature(body, key, sig))
	assert.False(t, VerifySignature(body, key, sig+"00"))
	assert.False(t, VerifySignature([]byte("tampered"), key, sig))
}

func TestCompareHash(t *testing.T) {
	hash, err := GenerateHash([]byte("webhook-secret"))
	require.NoError(t, err)

	assert.True(t, CompareHash([]byte(hash), []byte("webhook-secret")))
	assert.False(t, CompareHash([]byte(hash), []byte("wrong-secret")))
}

func TestRandomNumber_EighteenDigits(t *testing.T) {
	n, err := randomNumber()
	require.NoError(t, err)
	assert.Len(t, n, 18)
	assert.NotEqual(t, '0', rune(n[0]))
}

func TestClientWebhookAuth(t *testing.T) {
	hash, err := GenerateHash([]byte("hook-secret"))
	require.NoError(t, err)

	c := &Client{cfg: Config{Enabled: true, HMACKey: "hmac-key", WebhookSecretHash: hash}}

	assert.True(t, c.VerifyWebhookSecret("hook-secret"))
	assert.False(t, c.VerifyWebhookSecret("wrong-secret"))

	body := []byte(`{"reference":"R1","status":"confirmed"}`)
	sig := Hmac256(body, []byte("hmac-key"))
	assert.True(t, c.VerifyCallbackSignature(body, sig))
	assert.False(t, c.VerifyCallbackSignature(body, "bad-signature"))
	assert.False(t, c.VerifyCallbackSignature([]byte("tampered"), sig))

	// Missing key material always fails closed.
	empty := &Client{cfg: Config{Enabled: true}}
	assert.False(t, empty.VerifyWebhookSecret("hook-secret"))
	assert.False(t, empty.VerifyCallbackSignature(body, sig))
}

func TestDisabledClient(t *testing.T) {
	c := &Client{cfg: Config{Enabled: false}}
	assert.False(t, c.Enabled())

	_, err := c.Verify(t.Context(), &FormVerify{})
	assert.Error(t, err)
}
