package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/anisgadi/roombooking/internal/dto"
	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"github.com/anisgadi/roombooking/pkg/rabbitmq"
	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(ctx context.Context, client *models.User, roomID uint, start, end time.Time, partySize int) (*models.Booking, error)
	CancelBooking(ctx context.Context, actor *models.User, bookingID uint) (*models.Booking, error)
	TransitionBooking(ctx context.Context, actor *models.User, bookingID uint, target models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, actor *models.User, id uint) (*models.Booking, error)
	ListByClient(ctx context.Context, clientID uint) ([]models.Booking, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id uint) error
	FindConflicts(ctx context.Context, roomID uint, rng models.TimeRange, excludeID uint) ([]models.Booking, error)
	ReviewEligibility(ctx context.Context, client *models.User, bookingID uint) (bool, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	roomRepo    repository.RoomRepository
	reviewRepo  repository.ReviewRepository
	publisher   *rabbitmq.Publisher
	clock       Clock

	// initialStatus is fixed at startup: pending (owner approval workflow)
	// or confirmed (auto-confirm). Never mixed per request.
	initialStatus models.BookingStatus
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	roomRepo repository.RoomRepository,
	reviewRepo repository.ReviewRepository,
	publisher *rabbitmq.Publisher,
	clock Clock,
	autoConfirm bool,
) BookingService {
	if clock == nil {
		clock = SystemClock
	}
	initial := models.BookingPending
	if autoConfirm {
		initial = models.BookingConfirmed
	}
	return &bookingService{
		bookingRepo:   bookingRepo,
		roomRepo:      roomRepo,
		reviewRepo:    reviewRepo,
		publisher:     publisher,
		clock:         clock,
		initialStatus: initial,
	}
}

// CreateBooking validates, prices and persists a booking. The conflict check
// and the insert run in one transaction holding a row lock on the room, so
// two concurrent requests for overlapping ranges cannot both pass the check.
func (s *bookingService) CreateBooking(ctx context.Context, client *models.User, roomID uint, start, end time.Time, partySize int) (*models.Booking, error) {
	rng, err := models.NewTimeRange(start, end)
	if err != nil {
		return nil, err
	}
	if partySize < 1 {
		return nil, ErrInvalidPartySize
	}

	var result *models.Booking
	var room *models.Room

	err = s.bookingRepo.Transact(ctx, func(tx *gorm.DB) error {
		// 1. Lock the room row to serialize concurrent booking attempts
		room, err = s.roomRepo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoomNotFound
			}
			return err
		}

		// 2. Room must be approved and available
		if !room.Bookable() {
			return ErrRoomNotApproved
		}

		// 3. Capacity
		if partySize > room.Capacity {
			return ErrCapacityExceeded
		}

		// 4. Conflicts against pending and confirmed bookings
		existing, err := s.bookingRepo.FindByRoom(ctx, tx, roomID, models.BlockingStatuses)
		if err != nil {
			return err
		}
		if conflicts := FindConflicts(rng, existing, 0); len(conflicts) > 0 {
			return &ConflictError{BookingIDs: conflictIDs(conflicts)}
		}

		// 5. Price
		total, err := ComputePrice(room.RateAmount, room.RateUnit, rng)
		if err != nil {
			return err
		}

		// 6. Persist in the deployment's initial status
		booking := &models.Booking{
			RoomID:     roomID,
			ClientID:   client.ID,
			StartAt:    rng.Start,
			EndAt:      rng.End,
			PartySize:  partySize,
			TotalPrice: total,
			Status:     s.initialStatus,
		}
		if err := s.bookingRepo.Create(ctx, tx, booking); err != nil {
			return err
		}
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking.created", result, room)
	return result, nil
}

// CancelBooking transitions the booking to cancelled. Only the booking's
// client may cancel, and only while the end instant is still in the future.
func (s *bookingService) CancelBooking(ctx context.Context, actor *models.User, bookingID uint) (*models.Booking, error) {
	return s.transition(ctx, actor, bookingID, models.BookingCancelled)
}

// TransitionBooking applies an explicit status change. confirmed and refused
// are owner/admin decisions on pending bookings; cancelled is the client's.
// completed is never set through here, it is derived from the clock.
func (s *bookingService) TransitionBooking(ctx context.Context, actor *models.User, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	switch target {
	case models.BookingConfirmed, models.BookingRefused, models.BookingCancelled:
		return s.transition(ctx, actor, bookingID, target)
	default:
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return nil, ErrBookingNotFound
		}
		return nil, &TransitionError{From: booking.EffectiveStatus(s.clock()), To: target}
	}
}

func (s *bookingService) transition(ctx context.Context, actor *models.User, bookingID uint, target models.BookingStatus) (*models.Booking, error) {
	var result *models.Booking
	var room *models.Room

	err := s.bookingRepo.Transact(ctx, func(tx *gorm.DB) error {
		booking, err := s.bookingRepo.FindByID(ctx, bookingID)
		if err != nil {
			return ErrBookingNotFound
		}

		// Lock the room so the release of the slot is serialized with any
		// concurrent conflict check on it.
		room, err = s.roomRepo.FindByIDForUpdate(ctx, tx, booking.RoomID)
		if err != nil {
			return err
		}

		if err := s.authorizeTransition(actor, booking, room, target); err != nil {
			return err
		}

		// Re-read under the room lock. A racing transition on the same
		// booking commits before releasing that lock, so this read sees
		// its status and a terminal state is never overwritten.
		booking, err = s.bookingRepo.FindByIDForUpdate(ctx, tx, booking.ID)
		if err != nil {
			return ErrBookingNotFound
		}
		booking.Room = room

		now := s.clock()
		current := booking.EffectiveStatus(now)
		if target == models.BookingCancelled && !now.Before(booking.EndAt) {
			return &TransitionError{From: current, To: target}
		}
		if !current.CanTransition(target) {
			return &TransitionError{From: current, To: target}
		}

		if err := s.bookingRepo.UpdateStatus(ctx, tx, booking.ID, target); err != nil {
			return err
		}
		booking.Status = target
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish("booking."+string(target), result, room)
	return result, nil
}

func (s *bookingService) authorizeTransition(actor *models.User, booking *models.Booking, room *models.Room, target models.BookingStatus) error {
	switch target {
	case models.BookingCancelled:
		if actor.ID != booking.ClientID {
			return ErrNotAuthorized
		}
	case models.BookingConfirmed, models.BookingRefused:
		if !actor.IsAdmin() && actor.ID != room.OwnerID {
			return ErrNotAuthorized
		}
	default:
		return ErrNotAuthorized
	}
	return nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor *models.User, id uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrBookingNotFound
	}
	if actor.ID != booking.ClientID && !actor.IsAdmin() {
		if booking.Room == nil || booking.Room.OwnerID != actor.ID {
			return nil, ErrNotAuthorized
		}
	}
	return booking, nil
}

func (s *bookingService) ListByClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByClient(ctx, clientID)
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	return s.bookingRepo.FindByOwner(ctx, ownerID)
}

func (s *bookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.bookingRepo.FindAll(ctx)
}

func (s *bookingService) DeleteBooking(ctx context.Context, id uint) error {
	if _, err := s.bookingRepo.FindByID(ctx, id); err != nil {
		return ErrBookingNotFound
	}
	return s.bookingRepo.Delete(ctx, id)
}

// FindConflicts reports the blocking bookings that overlap the given range,
// outside any transaction. Used for availability preview; creation re-checks
// under the room lock.
func (s *bookingService) FindConflicts(ctx context.Context, roomID uint, rng models.TimeRange, excludeID uint) ([]models.Booking, error) {
	existing, err := s.bookingRepo.FindByRoom(ctx, nil, roomID, models.BlockingStatuses)
	if err != nil {
		return nil, err
	}
	return FindConflicts(rng, existing, excludeID), nil
}

// ReviewEligibility is true iff the booking belongs to the client, has
// reached completed (directly or derived from the clock) and has no review.
func (s *bookingService) ReviewEligibility(ctx context.Context, client *models.User, bookingID uint) (bool, error) {
	booking, err := s.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		return false, ErrBookingNotFound
	}
	if booking.ClientID != client.ID {
		return false, nil
	}
	if booking.EffectiveStatus(s.clock()) != models.BookingCompleted {
		return false, nil
	}
	if _, err := s.reviewRepo.FindByBooking(ctx, bookingID); err == nil {
		return false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return true, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking, room *models.Room) {
	if s.publisher == nil || booking == nil || room == nil {
		return
	}
	event := dto.BookingEvent{
		BookingID: booking.ID,
		RoomID:    room.ID,
		RoomTitle: room.Title,
		OwnerID:   room.OwnerID,
		ClientID:  booking.ClientID,
		Status:    booking.Status,
		StartAt:   booking.StartAt,
		EndAt:     booking.EndAt,
	}
	if err := s.publisher.Publish(routingKey, event); err != nil {
		log.Printf("[BookingService] failed to publish %s for booking %d: %v", routingKey, booking.ID, err)
	}
}
