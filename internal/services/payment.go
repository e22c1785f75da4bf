package services

import (
	"context"
	"fmt"
	"time"

	"facility-booking/internal/status"
	"facility-booking/models"
	"facility-booking/monitoring"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

// PaymentService settles uploaded payment slips. Approval and rejection
// flip the payment, its reservation and the audit trail in one
// transaction.
type PaymentService struct {
	app      core.App
	notifier *Notifier
	adminLog *AdminLogService
}

func NewPaymentService(app core.App, notifier *Notifier, adminLog *AdminLogService) *PaymentService {
	return &PaymentService{
		app:      app,
		notifier: notifier,
		adminLog: adminLog,
	}
}

// Review settles a pending payment. approve moves the reservation to
// confirmed/paid; reject leaves it pending/unpaid so the member can
// upload a new slip.
func (s *PaymentService) Review(ctx context.Context, paymentID string, approve bool, adminID, ip string) error {
	err := s.app.RunInTransaction(func(txApp core.App) error {
		payment, err := txApp.FindRecordById("payments", paymentID)
		if err != nil {
			return status.ErrPaymentNotFound
		}
		if (models.Payment{Status: payment.GetString("status")}).Reviewed() {
			return status.ErrPaymentReviewed
		}

		reservation, err := txApp.FindRecordById("reservations", payment.GetString("reservation"))
		if err != nil {
			return fmt.Errorf("load reservation: %w", err)
		}

		reviewedAt, err := types.ParseDateTime(time.Now())
		if err != nil {
			return err
		}
		payment.Set("reviewed_at", reviewedAt)

		action := "PAYMENT_REJECT"
		if approve {
			payment.Set("status", "succeeded")
			reservation.Set("payment_status", "paid")
			if reservation.GetString("status") == "pending" {
				reservation.Set("status", "confirmed")
			}
			action = "PAYMENT_APPROVE"
		} else {
			payment.Set("status", "failed")
		}

		if err := txApp.Save(payment); err != nil {
			return err
		}
		if err := txApp.Save(reservation); err != nil {
			return err
		}

		details := fmt.Sprintf("payment %s for reservation %s", paymentID, reservation.Id)
		return s.adminLog.AppendTx(txApp, adminID, action, details, ip)
	})
	if err != nil {
		return err
	}

	result := "rejected"
	if approve {
		result = "approved"
	}
	monitoring.TrackPaymentReview(result)
	s.notifier.PaymentReviewed(paymentID, result)
	return nil
}
