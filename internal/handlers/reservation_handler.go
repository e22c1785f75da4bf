package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"facility-booking/config"
	"facility-booking/internal/services"
	"facility-booking/internal/status"
	"facility-booking/internal/validate"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type ReservationHandler struct {
	app          *pocketbase.PocketBase
	reservations *services.ReservationService
	availability *services.AvailabilityService
	cfg          *config.Config
}

func NewReservationHandler(app *pocketbase.PocketBase, reservations *services.ReservationService, availability *services.AvailabilityService, cfg *config.Config) *ReservationHandler {
	return &ReservationHandler{
		app:          app,
		reservations: reservations,
		availability: availability,
		cfg:          cfg,
	}
}

// Create handles POST /api/reservations.
func (h *ReservationHandler) Create(e *core.RequestEvent) error {
	if e.Auth == nil {
		return e.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "กรุณาเข้าสู่ระบบ",
		})
	}

	var req struct {
		CourtID     string `json:"courtId"`
		SlotID      string `json:"slotId"`
		BookingDate string `json:"bookingDate"`
		SlipURL     string `json:"slipUrl"`
	}
	if err := e.BindBody(&req); err != nil {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "คำขอไม่ถูกต้อง (invalid request body)",
		})
	}

	courtID, err := validate.BigIntID(req.CourtID, "courtId")
	if err != nil {
		return validationFailure(e, err)
	}
	slotID, err := validate.BigIntID(req.SlotID, "slotId")
	if err != nil {
		return validationFailure(e, err)
	}
	bookingDate, err := validate.BookingDate(req.BookingDate)
	if err != nil {
		return validationFailure(e, err)
	}
	slipURL, err := validate.SlipURL(req.SlipURL, h.cfg.SlipAllowedHost)
	if err != nil {
		return validationFailure(e, err)
	}

	ctx := e.Request.Context()

	open, err := h.availability.IsOpen(ctx)
	if err != nil {
		return h.internalFailure(e, "POST /api/reservations", err)
	}
	if !open {
		return e.JSON(http.StatusForbidden, map[string]any{
			"success": false,
			"error": fmt.Sprintf("ระบบจองปิดให้บริการ กรุณาจองในเวลาทำการ %s น. (Booking system is closed. Service hours %s)",
				h.cfg.ServiceWindow, h.cfg.ServiceWindow),
		})
	}

	result, err := h.reservations.Create(ctx, services.CreateParams{
		UserID:   e.Auth.Id,
		CourtID:  courtID.String(),
		SlotID:   slotID.String(),
		PlayDate: bookingDate,
		SlipURL:  slipURL,
	})
	switch {
	case err == nil:
	case errors.Is(err, status.ErrCourtNotFound):
		return e.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "ไม่พบสนามที่เลือก (court not found)",
		})
	case errors.Is(err, status.ErrSlotNotFound):
		return e.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "ไม่พบช่วงเวลาที่เลือก (time slot not found)",
		})
	case errors.Is(err, status.ErrSlotTaken):
		return e.JSON(http.StatusConflict, map[string]any{
			"success": false,
			"error":   "ช่วงเวลานี้ถูกจองแล้ว (this time slot is already reserved)",
		})
	default:
		return h.internalFailure(e, "POST /api/reservations", err)
	}

	var paymentID any
	if result.PaymentID != "" {
		paymentID = result.PaymentID
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "จองสนามสำเร็จ (reservation created)",
		"data": map[string]any{
			"reservation_id": result.ReservationID,
			"payment_id":     paymentID,
			"status":         result.Status,
			"amount":         result.Amount,
			"booking_date":   result.BookingDate,
			"court_name":     result.CourtName,
			"facility_name":  result.FacilityName,
		},
	})
}

// History handles GET /api/reservations.
func (h *ReservationHandler) History(e *core.RequestEvent) error {
	if e.Auth == nil {
		return e.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "กรุณาเข้าสู่ระบบ",
		})
	}

	result, err := h.reservations.History(e.Request.Context(), e.Auth.Id)
	if err != nil {
		return h.internalFailure(e, "GET /api/reservations", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
	})
}

// Cancel handles POST /api/reservations/{id}/cancel.
func (h *ReservationHandler) Cancel(e *core.RequestEvent) error {
	if e.Auth == nil {
		return e.JSON(http.StatusUnauthorized, map[string]any{
			"success": false,
			"error":   "กรุณาเข้าสู่ระบบ",
		})
	}

	reservationID := e.Request.PathValue("id")

	err := h.reservations.Cancel(e.Request.Context(), reservationID, e.Auth.Id)
	switch {
	case err == nil:
	case errors.Is(err, status.ErrReservationNotFound):
		return e.JSON(http.StatusNotFound, map[string]any{
			"success": false,
			"error":   "ไม่พบการจอง (reservation not found)",
		})
	case errors.Is(err, status.ErrNotOwner):
		return e.JSON(http.StatusForbidden, map[string]any{
			"success": false,
			"error":   "ไม่มีสิทธิ์ยกเลิกการจองนี้ (not your reservation)",
		})
	case errors.Is(err, status.ErrNotCancellable):
		return e.JSON(http.StatusConflict, map[string]any{
			"success": false,
			"error":   "ไม่สามารถยกเลิกการจองในสถานะนี้ (reservation can no longer be cancelled)",
		})
	default:
		return h.internalFailure(e, "POST /api/reservations/{id}/cancel", err)
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "ยกเลิกการจองสำเร็จ (reservation cancelled)",
	})
}

func validationFailure(e *core.RequestEvent, err error) error {
	var verr *validate.Error
	if errors.As(err, &verr) {
		return e.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   fmt.Sprintf("%s: %s", verr.Field, verr.Message),
			"field":   verr.Field,
		})
	}
	return e.JSON(http.StatusBadRequest, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}

// internalFailure logs only the error message, never a stack trace, and
// hides internals from the client.
func (h *ReservationHandler) internalFailure(e *core.RequestEvent, endpoint string, err error) error {
	log.Printf("%s: %v", endpoint, err)
	return e.JSON(http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง (internal error, please retry)",
	})
}
