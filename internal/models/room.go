package models

import "time"

type RateUnit string

const (
	RateHour RateUnit = "hour"
	RateDay  RateUnit = "day"
	RateWeek RateUnit = "week"
)

type RoomStatus string

const (
	RoomPending  RoomStatus = "pending"
	RoomApproved RoomStatus = "approved"
	RoomRejected RoomStatus = "rejected"
)

type Room struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OwnerID     uint       `gorm:"not null;index" json:"owner_id"`
	Title       string     `gorm:"size:100;not null" json:"title"`
	Description string     `gorm:"size:2000" json:"description"`
	Capacity    int        `gorm:"not null" json:"capacity"`
	RateAmount  float64    `gorm:"not null" json:"rate_amount"`
	RateUnit    RateUnit   `gorm:"type:varchar(10);not null;default:'hour'" json:"rate_unit"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`
	City        string     `gorm:"size:100" json:"city,omitempty"`
	Status      RoomStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Available   bool       `gorm:"not null;default:true" json:"available"`
	AvgRating   float64    `gorm:"not null;default:0" json:"avg_rating"`
	ReviewCount int        `gorm:"not null;default:0" json:"review_count"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// Bookable reports whether clients may reserve the room.
func (r *Room) Bookable() bool {
	return r.Status == RoomApproved && r.Available
}
