package models

import "time"

// Notification is produced by the booking event consumer to inform owners
// and clients about booking lifecycle changes.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	BookingID uint      `gorm:"not null" json:"booking_id"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
