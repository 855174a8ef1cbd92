package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingRefused   BookingStatus = "refused"
	BookingCompleted BookingStatus = "completed"
)

// BlockingStatuses hold a room's time range against new bookings. Completed
// and cancelled bookings release the slot.
var BlockingStatuses = []BookingStatus{BookingPending, BookingConfirmed}

type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	RoomID     uint          `gorm:"not null;index" json:"room_id"`
	ClientID   uint          `gorm:"not null;index" json:"client_id"`
	StartAt    time.Time     `gorm:"not null" json:"start_at"`
	EndAt      time.Time     `gorm:"not null" json:"end_at"`
	PartySize  int           `gorm:"not null" json:"party_size"`
	TotalPrice float64       `gorm:"not null" json:"total_price"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`

	Room   *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
}

func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartAt, End: b.EndAt}
}

// Terminal states admit no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingCancelled || s == BookingRefused || s == BookingCompleted
}

// CanTransition reports whether the lifecycle permits moving from s to target.
func (s BookingStatus) CanTransition(target BookingStatus) bool {
	switch s {
	case BookingPending:
		return target == BookingConfirmed || target == BookingRefused || target == BookingCancelled
	case BookingConfirmed:
		return target == BookingCancelled || target == BookingCompleted
	default:
		return false
	}
}

// EffectiveStatus derives completion at read time: a confirmed booking whose
// end instant has passed counts as completed even before the sweep job
// persists it.
func (b *Booking) EffectiveStatus(now time.Time) BookingStatus {
	if b.Status == BookingConfirmed && !now.Before(b.EndAt) {
		return BookingCompleted
	}
	return b.Status
}
