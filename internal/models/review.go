package models

import "time"

// Review is left by a client after their booking completed. At most one
// review per booking, enforced both in the service and by the unique index.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"not null;index" json:"room_id"`
	ClientID  uint      `gorm:"not null;index" json:"client_id"`
	BookingID uint      `gorm:"not null;uniqueIndex" json:"booking_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"size:1000;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Client *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Room   *Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
