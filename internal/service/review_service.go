package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"gorm.io/gorm"
)

type ReviewService interface {
	CreateReview(ctx context.Context, client *models.User, roomID, bookingID uint, rating int, comment string) (*models.Review, error)
	UpdateReview(ctx context.Context, actor *models.User, id uint, rating int, comment string) (*models.Review, error)
	DeleteReview(ctx context.Context, actor *models.User, id uint) error
	RoomReviews(ctx context.Context, roomID uint) ([]models.Review, error)
	OwnerRoomReviews(ctx context.Context, ownerID uint) ([]models.Review, error)
	RecomputeRating(ctx context.Context, roomID uint) error
}

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	roomRepo    repository.RoomRepository
	bookingRepo repository.BookingRepository
	clock       Clock
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	roomRepo repository.RoomRepository,
	bookingRepo repository.BookingRepository,
	clock Clock,
) ReviewService {
	if clock == nil {
		clock = SystemClock
	}
	return &reviewService{
		reviewRepo:  reviewRepo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		clock:       clock,
	}
}

// CreateReview gates on eligibility: the booking must belong to the client,
// be completed (persisted or clock-derived) and not reviewed yet.
func (s *reviewService) CreateReview(ctx context.Context, client *models.User, roomID, bookingID uint, rating int, comment string) (*models.Review, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if booking.ClientID != client.ID {
		return nil, ErrNotAuthorized
	}
	if booking.RoomID != roomID {
		return nil, ErrReviewRoomMismatch
	}
	if booking.EffectiveStatus(s.clock()) != models.BookingCompleted {
		return nil, ErrBookingNotReviewable
	}
	if _, err := s.reviewRepo.FindByBooking(ctx, bookingID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	review := &models.Review{
		RoomID:    roomID,
		ClientID:  client.ID,
		BookingID: bookingID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// the unique index on booking_id backstops a concurrent duplicate
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.RecomputeRating(ctx, roomID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, actor *models.User, id uint, rating int, comment string) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrReviewNotFound
	}
	if actor.ID != review.ClientID && !actor.IsAdmin() {
		return nil, ErrNotAuthorized
	}

	review.Rating = rating
	review.Comment = comment
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	if err := s.RecomputeRating(ctx, review.RoomID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, actor *models.User, id uint) error {
	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return ErrReviewNotFound
	}
	if actor.ID != review.ClientID && !actor.IsAdmin() {
		return ErrNotAuthorized
	}

	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		return err
	}
	return s.RecomputeRating(ctx, review.RoomID)
}

func (s *reviewService) RoomReviews(ctx context.Context, roomID uint) ([]models.Review, error) {
	return s.reviewRepo.FindByRoom(ctx, roomID)
}

func (s *reviewService) OwnerRoomReviews(ctx context.Context, ownerID uint) ([]models.Review, error) {
	return s.reviewRepo.FindByOwnerRooms(ctx, ownerID)
}

// RecomputeRating rebuilds the room's aggregate from the full review set
// rather than adjusting it incrementally, so it can never drift.
func (s *reviewService) RecomputeRating(ctx context.Context, roomID uint) error {
	avg, count, err := s.reviewRepo.Aggregate(ctx, roomID)
	if err != nil {
		return fmt.Errorf("aggregate reviews: %w", err)
	}
	return s.roomRepo.UpdateRating(ctx, roomID, avg, count)
}
