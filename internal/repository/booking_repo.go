package repository

import (
	"context"
	"time"

	"github.com/anisgadi/roombooking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	// Transact runs fn inside a database transaction. The service wraps
	// every conflict-check-then-write sequence in one of these.
	Transact(ctx context.Context, fn func(tx *gorm.DB) error) error

	Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	FindByRoom(ctx context.Context, tx *gorm.DB, roomID uint, statuses []models.BookingStatus) ([]models.Booking, error)
	FindByClient(ctx context.Context, clientID uint) ([]models.Booking, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	FindAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error
	Delete(ctx context.Context, id uint) error
	CompleteElapsed(ctx context.Context, now time.Time) (int64, error)
	GetDB() *gorm.DB
}

type bookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *bookingRepository) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func (r *bookingRepository) Create(ctx context.Context, tx *gorm.DB, booking *models.Booking) error {
	return tx.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// FindByIDForUpdate reads the booking inside tx with a row lock, so the
// status it returns cannot be overwritten by a concurrent transition.
func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	var booking models.Booking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) FindByRoom(ctx context.Context, tx *gorm.DB, roomID uint, statuses []models.BookingStatus) ([]models.Booking, error) {
	if tx == nil {
		tx = r.db
	}
	var bookings []models.Booking
	q := tx.WithContext(ctx).Where("room_id = ?", roomID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	if err := q.Order("start_at ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindByClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Preload("Room").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

// FindByOwner returns all bookings placed on rooms the owner holds.
func (r *bookingRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.owner_id = ?", ownerID).
		Preload("Room").
		Preload("Client").
		Order("bookings.created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").
		Preload("Client").
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, bookingID uint, status models.BookingStatus) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", bookingID).
		Update("status", status).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// CompleteElapsed persists the derived confirmed -> completed transition for
// every booking whose end instant has passed. Used by the sweep job.
func (r *bookingRepository) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = ? AND end_at <= ?", models.BookingConfirmed, now).
		Update("status", models.BookingCompleted)
	return res.RowsAffected, res.Error
}
