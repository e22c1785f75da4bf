package models

import (
	"time"
)

type Reservation struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	FacilityID    string    `json:"facility_id"`
	Status        string    `json:"status"`         // pending, confirmed, cancelled, completed
	PaymentStatus string    `json:"payment_status"` // unpaid, partial, paid, refunded
	ReservedDate  time.Time `json:"reserved_date"`
	Subtotal      int64     `json:"subtotal"` // minor currency units
	Total         int64     `json:"total"`    // minor currency units
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}

// CanCancel reports whether the reservation may still be cancelled by
// its owner. Completed and already cancelled reservations stay as-is;
// rows are never deleted, only transitioned.
func (r Reservation) CanCancel() bool {
	return r.Status == "pending" || r.Status == "confirmed"
}

type ReservationItem struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	CourtID       string    `json:"court_id"`
	SlotID        string    `json:"slot_id"`
	PlayDate      time.Time `json:"play_date"`
	Status        string    `json:"status"` // reserved, cancelled
	Price         int64     `json:"price"`  // minor currency units
}
