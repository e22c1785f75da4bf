package status

import "errors"

var (
	ErrSlotTaken           = errors.New("reservation: slot already reserved")
	ErrCourtNotFound       = errors.New("court: not found")
	ErrSlotNotFound        = errors.New("slot: not found")
	ErrPaymentNotFound     = errors.New("payment: not found")
	ErrReservationNotFound = errors.New("reservation: not found")
	ErrNotOwner            = errors.New("reservation: not owned by caller")
	ErrNotCancellable      = errors.New("reservation: state does not allow cancellation")
	ErrPaymentReviewed     = errors.New("payment: already reviewed")
	ErrStaleRevision       = errors.New("system setting: stale revision")
)
