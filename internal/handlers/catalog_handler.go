package handlers

import (
	"log"
	"net/http"

	"facility-booking/internal/services"

	"github.com/pocketbase/pocketbase/core"
)

// CatalogHandler serves the public bookable inventory.
type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// Facilities handles GET /api/facilities.
func (h *CatalogHandler) Facilities(e *core.RequestEvent) error {
	facilities, err := h.catalog.Facilities()
	if err != nil {
		log.Printf("GET /api/facilities: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง (internal error, please retry)",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    facilities,
	})
}

// Courts handles GET /api/facilities/{id}/courts.
func (h *CatalogHandler) Courts(e *core.RequestEvent) error {
	courts, err := h.catalog.Courts(e.Request.PathValue("id"))
	if err != nil {
		log.Printf("GET /api/facilities/{id}/courts: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง (internal error, please retry)",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    courts,
	})
}

// TimeSlots handles GET /api/time-slots.
func (h *CatalogHandler) TimeSlots(e *core.RequestEvent) error {
	slots, err := h.catalog.TimeSlots()
	if err != nil {
		log.Printf("GET /api/time-slots: %v", err)
		return e.JSON(http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "เกิดข้อผิดพลาดในระบบ กรุณาลองใหม่อีกครั้ง (internal error, please retry)",
		})
	}

	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"data":    slots,
	})
}
