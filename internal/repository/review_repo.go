package repository

import (
	"context"

	"github.com/anisgadi/roombooking/internal/models"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Save(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Review, error)
	FindByBooking(ctx context.Context, bookingID uint) (*models.Review, error)
	FindByRoom(ctx context.Context, roomID uint) ([]models.Review, error)
	FindByOwnerRooms(ctx context.Context, ownerID uint) ([]models.Review, error)
	Aggregate(ctx context.Context, roomID uint) (avg float64, count int64, err error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Save(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByBooking(ctx context.Context, bookingID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&review).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByRoom(ctx context.Context, roomID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Preload("Client").
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) FindByOwnerRooms(ctx context.Context, ownerID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Joins("JOIN rooms ON rooms.id = reviews.room_id").
		Where("rooms.owner_id = ?", ownerID).
		Preload("Client").
		Preload("Room").
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// Aggregate recomputes the room's rating in full from its review set.
// Zero reviews yields 0/0.
func (r *reviewRepository) Aggregate(ctx context.Context, roomID uint) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("room_id = ?", roomID).
		Scan(&result).Error
	if err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}
