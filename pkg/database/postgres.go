package database

import (
	"log"

	"github.com/anisgadi/roombooking/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Booking{},
		&models.Review{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Conflict scans always filter by room + blocking status
	if err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_bookings_room_status
		ON bookings (room_id, status)
	`).Error; err != nil {
		log.Fatalf("failed to create bookings index: %v", err)
	}

	return db
}
