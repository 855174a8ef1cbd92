package dto

import (
	"time"

	"github.com/anisgadi/roombooking/internal/models"
)

type RegisterRequest struct {
	FirstName string      `json:"first_name" validate:"required,max=100"`
	LastName  string      `json:"last_name" validate:"required,max=100"`
	Email     string      `json:"email" validate:"required,email"`
	Password  string      `json:"password" validate:"required,min=6"`
	Role      models.Role `json:"role" validate:"omitempty,oneof=client owner"`
	Phone     string      `json:"phone" validate:"omitempty,max=30"`
}

type UpdateDetailsRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateRoomRequest struct {
	Title       string          `json:"title" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=2000"`
	Capacity    int             `json:"capacity" validate:"required,gt=0"`
	RateAmount  float64         `json:"rate_amount" validate:"gte=0"`
	RateUnit    models.RateUnit `json:"rate_unit" validate:"required,oneof=hour day week"`
	Address     string          `json:"address" validate:"omitempty,max=255"`
	City        string          `json:"city" validate:"omitempty,max=100"`
	Available   *bool           `json:"available"`
}

type CreateBookingRequest struct {
	RoomID    uint      `json:"room_id" validate:"required"`
	StartAt   time.Time `json:"start_at" validate:"required"`
	EndAt     time.Time `json:"end_at" validate:"required"`
	PartySize int       `json:"party_size" validate:"required,gte=1"`
}

type TransitionBookingRequest struct {
	Status models.BookingStatus `json:"status" validate:"required"`
}

type CreateReviewRequest struct {
	RoomID    uint   `json:"room_id" validate:"required"`
	BookingID uint   `json:"booking_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"required,max=1000"`
}

type UpdateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"required,max=1000"`
}

type UpdateUserStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}
