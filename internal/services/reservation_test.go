package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"facility-booking/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationService_Create_SecondBookingConflicts(t *testing.T) {
	app := newTestApp(t)
	fixture := seedBookingData(t, app)
	service := newTestReservationService(app)
	ctx := context.Background()

	playDate := time.Date(2099, 1, 15, 0, 0, 0, 0, time.UTC)

	first, err := service.Create(ctx, CreateParams{
		UserID:   fixture.userID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: playDate,
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", first.Status)
	assert.Equal(t, int64(10000), first.Amount)
	assert.Empty(t, first.PaymentID)

	_, err = service.Create(ctx, CreateParams{
		UserID:   fixture.otherUserID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: playDate,
	})
	assert.ErrorIs(t, err, status.ErrSlotTaken)

	// Another date on the same court and slot is unaffected.
	_, err = service.Create(ctx, CreateParams{
		UserID:   fixture.otherUserID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: playDate.AddDate(0, 0, 1),
	})
	require.NoError(t, err)
}

func TestReservationService_Create_CancelledSlotIsRebookable(t *testing.T) {
	app := newTestApp(t)
	fixture := seedBookingData(t, app)
	service := newTestReservationService(app)
	ctx := context.Background()

	playDate := time.Date(2099, 2, 1, 0, 0, 0, 0, time.UTC)

	first, err := service.Create(ctx, CreateParams{
		UserID:   fixture.userID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: playDate,
	})
	require.NoError(t, err)

	require.NoError(t, service.Cancel(ctx, first.ReservationID, fixture.userID))

	second, err := service.Create(ctx, CreateParams{
		UserID:   fixture.otherUserID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: playDate,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ReservationID, second.ReservationID)
}

func TestReservationService_Create_UnknownCourt(t *testing.T) {
	app := newTestApp(t)
	fixture := seedBookingData(t, app)
	service := newTestReservationService(app)

	_, err := service.Create(context.Background(), CreateParams{
		UserID:   fixture.userID,
		CourtID:  "missing0court00",
		SlotID:   fixture.slotID,
		PlayDate: time.Date(2099, 1, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, status.ErrCourtNotFound)
}

func TestReservationService_Cancel_OwnerOnly(t *testing.T) {
	app := newTestApp(t)
	fixture := seedBookingData(t, app)
	service := newTestReservationService(app)
	ctx := context.Background()

	created, err := service.Create(ctx, CreateParams{
		UserID:   fixture.userID,
		CourtID:  fixture.courtID,
		SlotID:   fixture.slotID,
		PlayDate: time.Date(2099, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = service.Cancel(ctx, created.ReservationID, fixture.otherUserID)
	assert.ErrorIs(t, err, status.ErrNotOwner)

	require.NoError(t, service.Cancel(ctx, created.ReservationID, fixture.userID))

	err = service.Cancel(ctx, created.ReservationID, fixture.userID)
	assert.ErrorIs(t, err, status.ErrNotCancellable)
}

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := errors.New("UNIQUE constraint failed: reservation_items.court, reservation_items.slot, reservation_items.play_date")

	assert.True(t, isUniqueViolation(uniqueErr))
	assert.True(t, isUniqueViolation(fmt.Errorf("save item: %w", uniqueErr)))
	assert.False(t, isUniqueViolation(errors.New("database is locked")))
	assert.False(t, isUniqueViolation(nil))
}
