package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/anisgadi/roombooking/pkg/cache"
	"gorm.io/gorm"
)

const (
	publicListCacheKey = "rooms:public"
	publicListCacheTTL = 5 * time.Minute
)

type RoomService interface {
	CreateRoom(ctx context.Context, owner *models.User, room *models.Room) error
	UpdateRoom(ctx context.Context, actor *models.User, id uint, upd *models.Room) (*models.Room, error)
	DeleteRoom(ctx context.Context, actor *models.User, id uint) error
	GetRoom(ctx context.Context, id uint) (*models.Room, error)
	ListRooms(ctx context.Context, actor *models.User, filter repository.RoomFilter) (*dto.RoomListResponse, error)
	OwnerRooms(ctx context.Context, ownerID uint) ([]models.Room, error)
	PendingRooms(ctx context.Context) ([]models.Room, error)
	ApproveRoom(ctx context.Context, id uint) (*models.Room, error)
	RejectRoom(ctx context.Context, id uint) (*models.Room, error)
}

type roomService struct {
	roomRepo repository.RoomRepository
	cache    *cache.Cache
}

func NewRoomService(roomRepo repository.RoomRepository, c *cache.Cache) RoomService {
	return &roomService{roomRepo: roomRepo, cache: c}
}

func (s *roomService) CreateRoom(ctx context.Context, owner *models.User, room *models.Room) error {
	if _, err := unitLength(room.RateUnit); err != nil {
		return err
	}
	room.OwnerID = owner.ID
	// every new room waits for admin approval
	room.Status = models.RoomPending
	room.AvgRating = 0
	room.ReviewCount = 0

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return fmt.Errorf("create room: %w", err)
	}
	s.invalidateListing(ctx)
	return nil
}

// UpdateRoom applies owner edits. An owner edit sends the room back to
// pending approval; admin edits keep the current status.
func (s *roomService) UpdateRoom(ctx context.Context, actor *models.User, id uint, upd *models.Room) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if !actor.IsAdmin() && actor.ID != room.OwnerID {
		return nil, ErrNotAuthorized
	}
	if _, err := unitLength(upd.RateUnit); err != nil {
		return nil, err
	}

	room.Title = upd.Title
	room.Description = upd.Description
	room.Capacity = upd.Capacity
	room.RateAmount = upd.RateAmount
	room.RateUnit = upd.RateUnit
	room.Address = upd.Address
	room.City = upd.City
	room.Available = upd.Available
	if !actor.IsAdmin() {
		room.Status = models.RoomPending
	}

	if err := s.roomRepo.Save(ctx, room); err != nil {
		return nil, fmt.Errorf("update room: %w", err)
	}
	s.invalidateListing(ctx)
	return room, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, actor *models.User, id uint) error {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return ErrRoomNotFound
	}
	if !actor.IsAdmin() && actor.ID != room.OwnerID {
		return ErrNotAuthorized
	}
	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateListing(ctx)
	return nil
}

func (s *roomService) GetRoom(ctx context.Context, id uint) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

func (s *roomService) ListRooms(ctx context.Context, actor *models.User, filter repository.RoomFilter) (*dto.RoomListResponse, error) {
	switch {
	case actor == nil || actor.Role == models.RoleClient:
		// approved rooms only
	case actor.Role == models.RoleOwner:
		filter.OwnerID = actor.ID
	case actor.IsAdmin():
		filter.All = true
	}

	// the unfiltered public listing is the hot path, serve it from cache
	cacheable := actor == nil && filter.Search == "" && filter.City == "" &&
		filter.MinCapacity == 0 && filter.MaxRate == 0 && filter.Page <= 1

	if cacheable {
		var cached dto.RoomListResponse
		if hit, err := s.cache.Get(ctx, publicListCacheKey, &cached); err != nil {
			log.Printf("[RoomService] cache read failed: %v", err)
		} else if hit {
			return &cached, nil
		}
	}

	rooms, total, err := s.roomRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.RoomListResponse{
		Count: len(rooms),
		Total: total,
		Page:  max(filter.Page, 1),
		Rooms: rooms,
	}

	if cacheable {
		if err := s.cache.Set(ctx, publicListCacheKey, resp, publicListCacheTTL); err != nil {
			log.Printf("[RoomService] cache write failed: %v", err)
		}
	}
	return resp, nil
}

func (s *roomService) OwnerRooms(ctx context.Context, ownerID uint) ([]models.Room, error) {
	return s.roomRepo.FindByOwner(ctx, ownerID)
}

func (s *roomService) PendingRooms(ctx context.Context) ([]models.Room, error) {
	return s.roomRepo.FindByStatus(ctx, models.RoomPending)
}

func (s *roomService) ApproveRoom(ctx context.Context, id uint) (*models.Room, error) {
	return s.setStatus(ctx, id, models.RoomApproved)
}

func (s *roomService) RejectRoom(ctx context.Context, id uint) (*models.Room, error) {
	return s.setStatus(ctx, id, models.RoomRejected)
}

func (s *roomService) setStatus(ctx context.Context, id uint, status models.RoomStatus) (*models.Room, error) {
	room, err := s.roomRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	if err := s.roomRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	room.Status = status
	s.invalidateListing(ctx)
	return room, nil
}

func (s *roomService) invalidateListing(ctx context.Context) {
	if err := s.cache.Delete(ctx, publicListCacheKey); err != nil {
		log.Printf("[RoomService] cache invalidation failed: %v", err)
	}
}
