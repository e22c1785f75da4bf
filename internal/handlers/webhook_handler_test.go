package handlers

import (
	"net/http"
	"testing"

	"github.com/pocketbase/pocketbase/tools/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSlipVerifier struct {
	enabled  bool
	secretOK bool
	signOK   bool
}

func (s *stubSlipVerifier) Enabled() bool { return s.enabled }

func (s *stubSlipVerifier) VerifyWebhookSecret(string) bool { return s.secretOK }

func (s *stubSlipVerifier) VerifyCallbackSignature([]byte, string) bool { return s.signOK }

func assertAPIError(t *testing.T, err error, wantStatus int) {
	t.Helper()

	var apiErr *router.ApiError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, wantStatus, apiErr.Status)
}

func TestWebhookHandler_DisabledClient(t *testing.T) {
	handler := NewWebhookHandler(nil, &stubSlipVerifier{})

	event, _ := newRequestEvent(http.MethodPost, "/api/webhooks/slipcheck", []byte(`{}`))

	assertAPIError(t, handler.SlipConfirmation(event), http.StatusNotFound)
}

func TestWebhookHandler_RejectsBadSecret(t *testing.T) {
	handler := NewWebhookHandler(nil, &stubSlipVerifier{enabled: true})

	event, _ := newRequestEvent(http.MethodPost, "/api/webhooks/slipcheck", []byte(`{}`))
	event.Request.Header.Set("X-Webhook-Secret", "wrong")

	assertAPIError(t, handler.SlipConfirmation(event), http.StatusUnauthorized)
}

func TestWebhookHandler_RejectsBadSignature(t *testing.T) {
	handler := NewWebhookHandler(nil, &stubSlipVerifier{enabled: true, secretOK: true})

	event, _ := newRequestEvent(http.MethodPost, "/api/webhooks/slipcheck", []byte(`{"reference":"R1"}`))
	event.Request.Header.Set("SignedHash", "tampered")

	assertAPIError(t, handler.SlipConfirmation(event), http.StatusUnauthorized)
}

func TestWebhookHandler_RejectsMalformedPayload(t *testing.T) {
	handler := NewWebhookHandler(nil, &stubSlipVerifier{enabled: true, secretOK: true, signOK: true})

	event, _ := newRequestEvent(http.MethodPost, "/api/webhooks/slipcheck", []byte(`not-json`))
	assertAPIError(t, handler.SlipConfirmation(event), http.StatusBadRequest)

	event, _ = newRequestEvent(http.MethodPost, "/api/webhooks/slipcheck", []byte(`{"status":"confirmed"}`))
	assertAPIError(t, handler.SlipConfirmation(event), http.StatusBadRequest)
}
