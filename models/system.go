package models

import (
	"time"
)

// SystemStatus is the JSON blob stored under the booking_system_status
// key in system_settings. OpenedAt is nil until the first explicit or
// automatic transition.
type SystemStatus struct {
	IsOpen   bool       `json:"isOpen"`
	OpenedBy string     `json:"openedBy"`
	OpenedAt *time.Time `json:"openedAt"`
}

type AdminLogEntry struct {
	ID        string    `json:"id"`
	AdminID   string    `json:"admin_id"`
	Action    string    `json:"action"` // BOOKING_SYSTEM_OPEN, BOOKING_SYSTEM_CLOSE, PAYMENT_APPROVE, PAYMENT_REJECT
	Details   string    `json:"details"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"created_at"`
}
