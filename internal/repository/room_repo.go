package repository

import (
	"context"

	"github.com/anisgadi/roombooking/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RoomFilter narrows the room search. Visibility: All shows everything
// (admin), OwnerID shows the owner's own rooms plus approved ones, otherwise
// only approved rooms are returned.
type RoomFilter struct {
	All         bool
	OwnerID     uint
	Search      string
	City        string
	MinCapacity int
	MaxRate     float64
	Page        int
	Limit       int
}

type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Save(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*models.Room, error)
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]models.Room, error)
	FindByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error)
	Search(ctx context.Context, filter RoomFilter) ([]models.Room, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error
	UpdateRating(ctx context.Context, id uint, avg float64, count int64) error
	GetDB() *gorm.DB
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) GetDB() *gorm.DB {
	return r.db
}

func (r *roomRepository) Create(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) Save(ctx context.Context, room *models.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Room{}, id).Error
}

func (r *roomRepository) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// FindByIDForUpdate acquires a row-level lock on the room within the given
// transaction. Every conflict-check-then-write sequence locks the room first
// so concurrent requests for the same room serialize.
func (r *roomRepository) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	var room models.Room
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) FindByOwner(ctx context.Context, ownerID uint) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) FindByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	var rooms []models.Room
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("Owner").
		Order("created_at DESC").
		Find(&rooms).Error
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Search(ctx context.Context, f RoomFilter) ([]models.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Room{})

	switch {
	case f.All:
		// admin sees everything
	case f.OwnerID != 0:
		q = q.Where("owner_id = ? OR status = ?", f.OwnerID, models.RoomApproved)
	default:
		q = q.Where("status = ?", models.RoomApproved)
	}

	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ? OR city ILIKE ?", like, like, like)
	}
	if f.City != "" {
		q = q.Where("city ILIKE ?", f.City)
	}
	if f.MinCapacity > 0 {
		q = q.Where("capacity >= ?", f.MinCapacity)
	}
	if f.MaxRate > 0 {
		q = q.Where("rate_amount <= ?", f.MaxRate)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var rooms []models.Room
	if err := q.Order("created_at DESC").Find(&rooms).Error; err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

func (r *roomRepository) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *roomRepository) UpdateRating(ctx context.Context, id uint, avg float64, count int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Room{}).
		Where("id = ?", id).
		Updates(map[string]any{"avg_rating": avg, "review_count": count}).Error
}
