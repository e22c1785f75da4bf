package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"facility-booking/config"
	"facility-booking/internal/services/slipcheck"
	"facility-booking/internal/status"
	"facility-booking/models"
	"facility-booking/monitoring"
	"facility-booking/utils"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
	"github.com/shopspring/decimal"
)

// ReservationService creates, lists and cancels reservations. Creation
// runs the conflict check and all inserts inside one transaction; the
// partial unique index on reservation_items backs the check up, so two
// concurrent requests for the same (court, slot, date) cannot both
// commit even if both pass the read.
type ReservationService struct {
	app      core.App
	pricing  *PricingService
	notifier *Notifier
	slip     *slipcheck.Client
	cfg      *config.Config
}

func NewReservationService(app core.App, pricing *PricingService, notifier *Notifier, slip *slipcheck.Client, cfg *config.Config) *ReservationService {
	return &ReservationService{
		app:      app,
		pricing:  pricing,
		notifier: notifier,
		slip:     slip,
		cfg:      cfg,
	}
}

type CreateParams struct {
	UserID   string
	CourtID  string
	SlotID   string
	PlayDate time.Time
	SlipURL  string
}

type CreateResult struct {
	ReservationID string
	PaymentID     string
	Status        string
	Amount        int64
	BookingDate   string
	CourtName     string
	FacilityName  string
}

func (s *ReservationService) Create(ctx context.Context, params CreateParams) (*CreateResult, error) {
	court, err := s.app.FindRecordById("courts", params.CourtID)
	if err != nil {
		return nil, status.ErrCourtNotFound
	}
	slot, err := s.app.FindRecordById("time_slots", params.SlotID)
	if err != nil {
		return nil, status.ErrSlotNotFound
	}
	facility, err := s.app.FindRecordById("facilities", court.GetString("facility"))
	if err != nil {
		return nil, fmt.Errorf("load facility: %w", err)
	}

	rate := s.pricing.RatePerHour(facility.Id, court.Id)
	price, err := SlotPrice(rate, slot.GetInt("duration_minutes"))
	if err != nil {
		return nil, err
	}

	refCode, err := utils.GenerateCode(4)
	if err != nil {
		return nil, err
	}

	playDate, err := types.ParseDateTime(params.PlayDate)
	if err != nil {
		return nil, fmt.Errorf("play date: %w", err)
	}

	start := time.Now()
	var reservationID, paymentID string

	txErr := s.app.RunInTransaction(func(txApp core.App) error {
		// Fast-path check for a friendly conflict message; the unique
		// index below is the actual guarantee.
		_, err := txApp.FindFirstRecordByFilter(
			"reservation_items",
			"court = {:court} && slot = {:slot} && play_date = {:date} && status = 'reserved'",
			dbx.Params{"court": court.Id, "slot": slot.Id, "date": playDate.String()},
		)
		if err == nil {
			return status.ErrSlotTaken
		}

		reservations, err := txApp.FindCollectionByNameOrId("reservations")
		if err != nil {
			return err
		}
		reservation := core.NewRecord(reservations)
		reservation.Set("user", params.UserID)
		reservation.Set("facility", facility.Id)
		reservation.Set("status", "pending")
		reservation.Set("payment_status", "unpaid")
		reservation.Set("reserved_date", playDate)
		reservation.Set("subtotal", price)
		reservation.Set("total", price)
		reservation.Set("currency", s.cfg.Currency)
		reservation.Set("ref_code", refCode)
		if err := txApp.Save(reservation); err != nil {
			return err
		}

		items, err := txApp.FindCollectionByNameOrId("reservation_items")
		if err != nil {
			return err
		}
		item := core.NewRecord(items)
		item.Set("reservation", reservation.Id)
		item.Set("court", court.Id)
		item.Set("slot", slot.Id)
		item.Set("play_date", playDate)
		item.Set("status", "reserved")
		item.Set("price", price)
		if err := txApp.Save(item); err != nil {
			if isUniqueViolation(err) {
				return status.ErrSlotTaken
			}
			return err
		}

		if params.SlipURL != "" {
			payments, err := txApp.FindCollectionByNameOrId("payments")
			if err != nil {
				return err
			}
			meta, err := json.Marshal(models.PaymentMetadata{
				SlipURL:    params.SlipURL,
				UploadedBy: params.UserID,
				UploadedAt: time.Now(),
			})
			if err != nil {
				return err
			}

			payment := core.NewRecord(payments)
			payment.Set("reservation", reservation.Id)
			payment.Set("amount", price)
			payment.Set("currency", s.cfg.Currency)
			payment.Set("method", "slip_upload")
			payment.Set("status", "pending")
			payment.Set("metadata", types.JSONRaw(meta))
			if err := txApp.Save(payment); err != nil {
				return err
			}
			paymentID = payment.Id
		}

		reservationID = reservation.Id
		return nil
	})

	monitoring.TrackReservationCreate(time.Since(start), txErr)
	if txErr != nil {
		return nil, txErr
	}

	s.notifier.ReservationCreated(reservationID, params.UserID, court.GetString("name"), price)
	if paymentID != "" {
		s.notifier.PaymentSubmitted(paymentID, reservationID)
		s.verifySlipAsync(paymentID, refCode, params.SlipURL, price)
	}

	return &CreateResult{
		ReservationID: reservationID,
		PaymentID:     paymentID,
		Status:        "pending",
		Amount:        price,
		BookingDate:   params.PlayDate.Format("2006-01-02"),
		CourtName:     court.GetString("name"),
		FacilityName:  facility.GetString("name"),
	}, nil
}

// verifySlipAsync hands the uploaded slip to the external verification
// service. Best effort: the reservation already committed and admins
// review slips manually either way.
func (s *ReservationService) verifySlipAsync(paymentID, refCode, slipURL string, amount int64) {
	if s.slip == nil || !s.slip.Enabled() {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		amt := decimal.NewFromInt(amount).Div(decimal.NewFromInt(100))
		ref, err := s.slip.Verify(ctx, &slipcheck.FormVerify{
			SlipURL:        slipURL,
			Amount:         amt,
			ReferenceLabel: fmt.Sprintf("%s-%s", paymentID, refCode),
		})
		if err != nil {
			monitoring.TrackSlipVerify("error")
			return
		}
		monitoring.TrackSlipVerify("submitted")

		payment, err := s.app.FindRecordById("payments", paymentID)
		if err != nil {
			return
		}

		var meta models.PaymentMetadata
		if raw := payment.GetString("metadata"); raw != "" {
			json.Unmarshal([]byte(raw), &meta)
		}
		meta.VerifyRef = ref
		if data, err := json.Marshal(meta); err == nil {
			payment.Set("metadata", types.JSONRaw(data))
			s.app.Save(payment)
		}
	}()
}

// History returns the caller's reservations, newest first, expanded
// with facility and item details.
func (s *ReservationService) History(ctx context.Context, userID string) ([]map[string]any, error) {
	reservations, err := s.app.FindRecordsByFilter(
		"reservations",
		"user = {:userId}",
		"-created",
		20,
		0,
		dbx.Params{"userId": userID},
	)
	if err != nil {
		return nil, err
	}

	result := []map[string]any{}
	for _, reservation := range reservations {
		facilityName := ""
		if facility, err := s.app.FindRecordById("facilities", reservation.GetString("facility")); err == nil {
			facilityName = facility.GetString("name")
		}

		items, _ := s.app.FindRecordsByFilter(
			"reservation_items",
			"reservation = {:id}",
			"",
			-1,
			0,
			dbx.Params{"id": reservation.Id},
		)
		itemData := []map[string]any{}
		for _, item := range items {
			courtName := ""
			if court, err := s.app.FindRecordById("courts", item.GetString("court")); err == nil {
				courtName = court.GetString("name")
			}
			itemData = append(itemData, map[string]any{
				"id":         item.Id,
				"court_name": courtName,
				"play_date":  item.GetDateTime("play_date"),
				"status":     item.GetString("status"),
				"price":      item.GetInt("price"),
			})
		}

		result = append(result, map[string]any{
			"id":             reservation.Id,
			"facility_name":  facilityName,
			"status":         reservation.GetString("status"),
			"payment_status": reservation.GetString("payment_status"),
			"reserved_date":  reservation.GetDateTime("reserved_date"),
			"total":          reservation.GetInt("total"),
			"currency":       reservation.GetString("currency"),
			"ref_code":       reservation.GetString("ref_code"),
			"items":          itemData,
			"created":        reservation.GetDateTime("created"),
		})
	}

	return result, nil
}

// Cancel soft-cancels a reservation and its items. Rows are never
// deleted.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, userID string) error {
	return s.app.RunInTransaction(func(txApp core.App) error {
		reservation, err := txApp.FindRecordById("reservations", reservationID)
		if err != nil {
			return status.ErrReservationNotFound
		}
		if reservation.GetString("user") != userID {
			return status.ErrNotOwner
		}

		current := models.Reservation{Status: reservation.GetString("status")}
		if !current.CanCancel() {
			return status.ErrNotCancellable
		}

		reservation.Set("status", "cancelled")
		if err := txApp.Save(reservation); err != nil {
			return err
		}

		items, err := txApp.FindRecordsByFilter(
			"reservation_items",
			"reservation = {:id} && status = 'reserved'",
			"",
			-1,
			0,
			dbx.Params{"id": reservationID},
		)
		if err != nil {
			return err
		}
		for _, item := range items {
			item.Set("status", "cancelled")
			if err := txApp.Save(item); err != nil {
				return err
			}
		}
		return nil
	})
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
