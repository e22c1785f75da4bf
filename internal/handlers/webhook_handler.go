package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"facility-booking/internal/services/slipcheck"
	"facility-booking/models"
	"facility-booking/monitoring"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// slipVerifier is the part of the slipcheck client the webhook needs.
type slipVerifier interface {
	Enabled() bool
	VerifyWebhookSecret(secret string) bool
	VerifyCallbackSignature(body []byte, signature string) bool
}

// WebhookHandler receives asynchronous confirmations from the slip
// verification provider. Callers authenticate with the shared webhook
// secret plus an HMAC signature over the raw body.
type WebhookHandler struct {
	app  core.App
	slip slipVerifier
}

func NewWebhookHandler(app core.App, slip slipVerifier) *WebhookHandler {
	return &WebhookHandler{app: app, slip: slip}
}

// SlipConfirmation handles POST /api/webhooks/slipcheck.
func (h *WebhookHandler) SlipConfirmation(e *core.RequestEvent) error {
	if h.slip == nil || !h.slip.Enabled() {
		return apis.NewNotFoundError("", nil)
	}
	if !h.slip.VerifyWebhookSecret(e.Request.Header.Get("X-Webhook-Secret")) {
		return apis.NewUnauthorizedError("Invalid webhook credentials", nil)
	}

	body, err := io.ReadAll(e.Request.Body)
	if err != nil {
		return apis.NewBadRequestError("Invalid request body", err)
	}
	if !h.slip.VerifyCallbackSignature(body, e.Request.Header.Get("SignedHash")) {
		return apis.NewUnauthorizedError("Invalid signature", nil)
	}

	var conf slipcheck.Confirmation
	if err := json.Unmarshal(body, &conf); err != nil {
		return apis.NewBadRequestError("Invalid confirmation payload", err)
	}
	if conf.Reference == "" {
		return apis.NewBadRequestError("Missing confirmation reference", nil)
	}

	payment, err := h.app.FindFirstRecordByFilter(
		"payments",
		"metadata.verify_ref = {:ref}",
		dbx.Params{"ref": conf.Reference},
	)
	if err != nil {
		return apis.NewNotFoundError("Unknown verification reference", nil)
	}

	var meta models.PaymentMetadata
	if raw := payment.GetString("metadata"); raw != "" {
		json.Unmarshal([]byte(raw), &meta)
	}
	meta.VerifyStatus = conf.Status

	data, err := json.Marshal(meta)
	if err != nil {
		return apis.NewBadRequestError("Invalid confirmation payload", err)
	}
	payment.Set("metadata", types.JSONRaw(data))
	if err := h.app.Save(payment); err != nil {
		log.Printf("POST /api/webhooks/slipcheck: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "failed to record confirmation",
		})
	}

	monitoring.TrackSlipVerify("confirmed")
	return e.JSON(http.StatusOK, map[string]any{"success": true})
}
