package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"facility-booking/internal/services"
	"facility-booking/internal/status"
	"facility-booking/monitoring"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
)

type AdminHandler struct {
	app          *pocketbase.PocketBase
	availability *services.AvailabilityService
	payments     *services.PaymentService
	adminLog     *services.AdminLogService
}

func NewAdminHandler(app *pocketbase.PocketBase, availability *services.AvailabilityService, payments *services.PaymentService, adminLog *services.AdminLogService) *AdminHandler {
	return &AdminHandler{
		app:          app,
		availability: availability,
		payments:     payments,
		adminLog:     adminLog,
	}
}

// GetBookingSystem - current open/closed state; may lazily initialize
// or auto-open the stored record.
func (h *AdminHandler) GetBookingSystem(e *core.RequestEvent) error {
	if e.Auth == nil {
		return apis.NewUnauthorizedError("Unauthorized", nil)
	}

	st, err := h.availability.Status(e.Request.Context())
	if err != nil {
		log.Printf("GET /api/admin/booking-system: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{"error": "failed to load booking system status"})
	}

	monitoring.TrackSystemOpen(st.IsOpen)
	return e.JSON(http.StatusOK, st)
}

// SetBookingSystem - admin open/close toggle with audit logging.
func (h *AdminHandler) SetBookingSystem(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	var req struct {
		Action string `json:"action"`
	}
	if err := e.BindBody(&req); err != nil {
		return apis.NewBadRequestError("Invalid request", err)
	}
	if req.Action != "open" && req.Action != "close" {
		return apis.NewBadRequestError("action must be open or close", nil)
	}

	st, err := h.availability.SetOpen(e.Request.Context(), req.Action == "open", e.Auth.Id, requestIP(e))
	if err != nil {
		log.Printf("POST /api/admin/booking-system: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{"error": "failed to update booking system status"})
	}

	monitoring.TrackSystemOpen(st.IsOpen)
	return e.JSON(http.StatusOK, st)
}

// ApprovePayment - settle a slip as valid.
func (h *AdminHandler) ApprovePayment(e *core.RequestEvent) error {
	return h.reviewPayment(e, true)
}

// RejectPayment - settle a slip as invalid.
func (h *AdminHandler) RejectPayment(e *core.RequestEvent) error {
	return h.reviewPayment(e, false)
}

func (h *AdminHandler) reviewPayment(e *core.RequestEvent, approve bool) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	paymentID := e.Request.PathValue("id")

	err := h.payments.Review(e.Request.Context(), paymentID, approve, e.Auth.Id, requestIP(e))
	switch {
	case err == nil:
	case errors.Is(err, status.ErrPaymentNotFound):
		return apis.NewNotFoundError("Payment not found", nil)
	case errors.Is(err, status.ErrPaymentReviewed):
		return e.JSON(http.StatusConflict, map[string]any{"error": "payment already reviewed"})
	default:
		log.Printf("POST /api/admin/payments/{id}: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{"error": "failed to review payment"})
	}

	message := "payment rejected"
	if approve {
		message = "payment approved"
	}
	return e.JSON(http.StatusOK, map[string]any{"message": message})
}

// ListLogs - recent audit entries, newest first.
func (h *AdminHandler) ListLogs(e *core.RequestEvent) error {
	if e.Auth == nil || e.Auth.Collection().Name != "admins" {
		return apis.NewUnauthorizedError("Admin access required", nil)
	}

	entries, err := h.adminLog.List(100)
	if err != nil {
		log.Printf("GET /api/admin/logs: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{"error": "failed to load audit log"})
	}

	return e.JSON(http.StatusOK, map[string]any{"logs": entries})
}

func requestIP(e *core.RequestEvent) string {
	if fwd := e.Request.Header.Get("x-forwarded-for"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	return "unknown"
}
