package models

import (
	"time"
)

type Payment struct {
	ID            string          `json:"payment_id"`
	ReservationID string          `json:"reservation_id"`
	Amount        int64           `json:"amount"` // minor currency units
	Currency      string          `json:"currency"`
	Method        string          `json:"method"` // slip_upload, qr_code, cash
	Status        string          `json:"status"` // pending, succeeded, failed
	Metadata      PaymentMetadata `json:"metadata"`
	CreatedAt     time.Time       `json:"created_at"`
	ReviewedAt    *time.Time      `json:"reviewed_at,omitempty"`
}

// Reviewed reports whether an admin already settled this payment.
func (p Payment) Reviewed() bool {
	return p.Status != "pending"
}

type PaymentMetadata struct {
	SlipURL      string    `json:"slip_url,omitempty"`
	UploadedBy   string    `json:"uploaded_by,omitempty"`
	UploadedAt   time.Time `json:"uploaded_at,omitempty"`
	VerifyRef    string    `json:"verify_ref,omitempty"`
	VerifyStatus string    `json:"verify_status,omitempty"`
}
