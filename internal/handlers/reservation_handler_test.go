package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"facility-booking/config"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestEvent(method, target string, body []byte) (*core.RequestEvent, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	event := &core.RequestEvent{}
	event.Request = req
	event.Response = rec

	return event, rec
}

func authenticatedEvent(method, target string, body []byte) (*core.RequestEvent, *httptest.ResponseRecorder) {
	event, rec := newRequestEvent(method, target, body)

	users := core.NewAuthCollection("users")
	user := core.NewRecord(users)
	user.Id = "user123"
	event.Auth = user

	return event, rec
}

func TestReservationHandler_Create_Unauthorized(t *testing.T) {
	handler := &ReservationHandler{cfg: &config.Config{}}

	event, rec := newRequestEvent(http.MethodPost, "/api/reservations", []byte(`{}`))

	err := handler.Create(event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "กรุณาเข้าสู่ระบบ", body["error"])
}

func TestReservationHandler_Create_RejectsZeroCourtID(t *testing.T) {
	handler := &ReservationHandler{cfg: &config.Config{}}

	payload := []byte(`{"courtId":"0","slotId":"12","bookingDate":"2099-01-01"}`)
	event, rec := authenticatedEvent(http.MethodPost, "/api/reservations", payload)

	err := handler.Create(event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "courtId")
}

func TestReservationHandler_Create_RejectsMalformedDate(t *testing.T) {
	handler := &ReservationHandler{cfg: &config.Config{}}

	payload := []byte(`{"courtId":"5","slotId":"12","bookingDate":"01-01-2099"}`)
	event, rec := authenticatedEvent(http.MethodPost, "/api/reservations", payload)

	err := handler.Create(event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "bookingDate")
}

func TestReservationHandler_Create_RejectsNonHTTPSSlip(t *testing.T) {
	handler := &ReservationHandler{cfg: &config.Config{SlipAllowedHost: []string{"slips.example.edu"}}}

	payload := []byte(`{"courtId":"5","slotId":"12","bookingDate":"2099-01-01","slipUrl":"http://slips.example.edu/a.jpg"}`)
	event, rec := authenticatedEvent(http.MethodPost, "/api/reservations", payload)

	err := handler.Create(event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "slipUrl")
}

func TestReservationHandler_History_Unauthorized(t *testing.T) {
	handler := &ReservationHandler{cfg: &config.Config{}}

	event, rec := newRequestEvent(http.MethodGet, "/api/reservations", nil)

	err := handler.History(event)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequestIP(t *testing.T) {
	event, _ := newRequestEvent(http.MethodPost, "/api/admin/booking-system", nil)
	assert.Equal(t, "unknown", requestIP(event))

	event.Request.Header.Set("x-forwarded-for", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", requestIP(event))
}
