package dto

import (
	"time"

	"github.com/anisgadi/roombooking/internal/models"
)

// BookingEvent is published on booking lifecycle changes and consumed by the
// notification consumer.
type BookingEvent struct {
	BookingID uint                 `json:"booking_id"`
	RoomID    uint                 `json:"room_id"`
	RoomTitle string               `json:"room_title"`
	OwnerID   uint                 `json:"owner_id"`
	ClientID  uint                 `json:"client_id"`
	Status    models.BookingStatus `json:"status"`
	StartAt   time.Time            `json:"start_at"`
	EndAt     time.Time            `json:"end_at"`
}
