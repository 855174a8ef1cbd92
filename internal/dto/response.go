package dto

import (
	"time"

	"github.com/anisgadi/roombooking/internal/models"
)

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type BookingResponse struct {
	ID         uint                 `json:"id"`
	RoomID     uint                 `json:"room_id"`
	ClientID   uint                 `json:"client_id"`
	StartAt    time.Time            `json:"start_at"`
	EndAt      time.Time            `json:"end_at"`
	PartySize  int                  `json:"party_size"`
	TotalPrice float64              `json:"total_price"`
	Status     models.BookingStatus `json:"status"`
	Room       *models.Room         `json:"room,omitempty"`
	Client     *models.User         `json:"client,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

type RoomListResponse struct {
	Count int           `json:"count"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Rooms []models.Room `json:"rooms"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// ToBookingResponse reports the booking with its read-time derived status.
func ToBookingResponse(b *models.Booking, now time.Time) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		ClientID:   b.ClientID,
		StartAt:    b.StartAt,
		EndAt:      b.EndAt,
		PartySize:  b.PartySize,
		TotalPrice: b.TotalPrice,
		Status:     b.EffectiveStatus(now),
		Room:       b.Room,
		Client:     b.Client,
		CreatedAt:  b.CreatedAt,
	}
}

func ToBookingResponses(bookings []models.Booking, now time.Time) []BookingResponse {
	out := make([]BookingResponse, len(bookings))
	for i := range bookings {
		out[i] = ToBookingResponse(&bookings[i], now)
	}
	return out
}
