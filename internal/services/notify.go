package services

import (
	"context"
	"log"
	"time"

	"facility-booking/utils"

	pubnub "github.com/pubnub/go"
)

const adminEventsChannel = "admin-booking-events"

// Notifier publishes realtime events for the admin dashboard. Publishes
// are best effort: failures are logged, never surfaced to the request,
// and a circuit breaker stops hammering PubNub while it is down.
type Notifier struct {
	pn      *pubnub.PubNub
	breaker *utils.CircuitBreaker
}

func NewNotifier(pn *pubnub.PubNub) *Notifier {
	return &Notifier{
		pn:      pn,
		breaker: utils.NewCircuitBreaker("pubnub-publish"),
	}
}

func (n *Notifier) ReservationCreated(reservationID, userID, courtName string, amount int64) {
	n.publish(map[string]any{
		"type":           "reservation_created",
		"reservation_id": reservationID,
		"user_id":        userID,
		"court_name":     courtName,
		"amount":         amount,
	})
}

func (n *Notifier) PaymentSubmitted(paymentID, reservationID string) {
	n.publish(map[string]any{
		"type":           "payment_submitted",
		"payment_id":     paymentID,
		"reservation_id": reservationID,
	})
}

func (n *Notifier) PaymentReviewed(paymentID, result string) {
	n.publish(map[string]any{
		"type":       "payment_reviewed",
		"payment_id": paymentID,
		"result":     result,
	})
}

func (n *Notifier) SystemToggled(open bool, adminID string) {
	n.publish(map[string]any{
		"type":      "system_toggled",
		"is_open":   open,
		"opened_by": adminID,
		"at":        time.Now().Unix(),
	})
}

func (n *Notifier) publish(message map[string]any) {
	if n == nil || n.pn == nil {
		return
	}

	go func() {
		err := n.breaker.Do(context.Background(), func() error {
			_, _, err := n.pn.Publish().
				Channel(adminEventsChannel).
				Message(message).
				Execute()
			return err
		})
		if err != nil {
			log.Printf("notify %v: %v", message["type"], err)
		}
	}()
}
