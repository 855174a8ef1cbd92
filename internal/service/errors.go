package service

import (
	"errors"
	"fmt"

	"github.com/anisgadi/roombooking/internal/models"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")

	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomNotApproved = errors.New("room is not approved and available for booking")
	ErrInvalidRateUnit = errors.New("rate unit must be hour, day or week")

	ErrBookingNotFound  = errors.New("booking not found")
	ErrCapacityExceeded = errors.New("party size exceeds room capacity")
	ErrInvalidPartySize = errors.New("party size must be at least 1")
	ErrNotAuthorized    = errors.New("not authorized to perform this action")

	ErrReviewNotFound       = errors.New("review not found")
	ErrReviewExists         = errors.New("a review already exists for this booking")
	ErrBookingNotReviewable = errors.New("booking must be completed before it can be reviewed")
	ErrReviewRoomMismatch   = errors.New("room does not match the booking")
)

// ConflictError reports that a candidate range overlaps existing bookings.
type ConflictError struct {
	BookingIDs []uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room is already booked for this period (conflicting bookings: %v)", e.BookingIDs)
}

// TransitionError reports a forbidden booking status transition.
type TransitionError struct {
	From models.BookingStatus
	To   models.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition booking from %s to %s", e.From, e.To)
}
