package service

import (
	"context"
	"time"

	"github.com/anisgadi/roombooking/internal/models"
	"github.com/anisgadi/roombooking/internal/repository"
	"gorm.io/gorm"
)

// --- Mock BookingRepository ---

type mockBookingRepo struct {
	bookings []models.Booking

	createFn            func(ctx context.Context, tx *gorm.DB, b *models.Booking) error
	findByIDFn          func(ctx context.Context, id uint) (*models.Booking, error)
	findByIDForUpdateFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error)
	findByRoomFn        func(ctx context.Context, tx *gorm.DB, roomID uint, statuses []models.BookingStatus) ([]models.Booking, error)
	updateStatusFn      func(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error
}

func (m *mockBookingRepo) Transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (m *mockBookingRepo) Create(ctx context.Context, tx *gorm.DB, b *models.Booking) error {
	if m.createFn != nil {
		return m.createFn(ctx, tx, b)
	}
	b.ID = uint(len(m.bookings) + 1)
	m.bookings = append(m.bookings, *b)
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			return &m.bookings[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Booking, error) {
	if m.findByIDForUpdateFn != nil {
		return m.findByIDForUpdateFn(ctx, tx, id)
	}
	return m.FindByID(ctx, id)
}

func (m *mockBookingRepo) FindByRoom(ctx context.Context, tx *gorm.DB, roomID uint, statuses []models.BookingStatus) ([]models.Booking, error) {
	if m.findByRoomFn != nil {
		return m.findByRoomFn(ctx, tx, roomID, statuses)
	}
	var out []models.Booking
	for _, b := range m.bookings {
		if b.RoomID != roomID {
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, b)
				break
			}
		}
	}
	return out, nil
}

func (m *mockBookingRepo) FindByClient(ctx context.Context, clientID uint) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindByOwner(ctx context.Context, ownerID uint) ([]models.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) FindAll(ctx context.Context) ([]models.Booking, error) {
	return m.bookings, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.BookingStatus) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, tx, id, status)
	}
	for i := range m.bookings {
		if m.bookings[i].ID == id {
			m.bookings[i].Status = status
		}
	}
	return nil
}

func (m *mockBookingRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockBookingRepo) CompleteElapsed(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func (m *mockBookingRepo) GetDB() *gorm.DB { return nil }

// --- Mock RoomRepository ---

type mockRoomRepo struct {
	rooms map[uint]*models.Room

	updateRatingFn func(ctx context.Context, id uint, avg float64, count int64) error
}

func (m *mockRoomRepo) Create(ctx context.Context, room *models.Room) error {
	if m.rooms == nil {
		m.rooms = map[uint]*models.Room{}
	}
	room.ID = uint(len(m.rooms) + 1)
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) Save(ctx context.Context, room *models.Room) error {
	m.rooms[room.ID] = room
	return nil
}

func (m *mockRoomRepo) Delete(ctx context.Context, id uint) error {
	delete(m.rooms, id)
	return nil
}

func (m *mockRoomRepo) FindByID(ctx context.Context, id uint) (*models.Room, error) {
	if room, ok := m.rooms[id]; ok {
		return room, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uint) (*models.Room, error) {
	return m.FindByID(ctx, id)
}

func (m *mockRoomRepo) FindByOwner(ctx context.Context, ownerID uint) ([]models.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) FindByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	return nil, nil
}

func (m *mockRoomRepo) Search(ctx context.Context, f repository.RoomFilter) ([]models.Room, int64, error) {
	return nil, 0, nil
}

func (m *mockRoomRepo) UpdateStatus(ctx context.Context, id uint, status models.RoomStatus) error {
	if room, ok := m.rooms[id]; ok {
		room.Status = status
	}
	return nil
}

func (m *mockRoomRepo) UpdateRating(ctx context.Context, id uint, avg float64, count int64) error {
	if m.updateRatingFn != nil {
		return m.updateRatingFn(ctx, id, avg, count)
	}
	if room, ok := m.rooms[id]; ok {
		room.AvgRating = avg
		room.ReviewCount = int(count)
	}
	return nil
}

func (m *mockRoomRepo) GetDB() *gorm.DB { return nil }

// --- Mock ReviewRepository ---

type mockReviewRepo struct {
	reviews []models.Review

	createFn    func(ctx context.Context, review *models.Review) error
	aggregateFn func(ctx context.Context, roomID uint) (float64, int64, error)
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if m.createFn != nil {
		return m.createFn(ctx, review)
	}
	review.ID = uint(len(m.reviews) + 1)
	m.reviews = append(m.reviews, *review)
	return nil
}

func (m *mockReviewRepo) Save(ctx context.Context, review *models.Review) error {
	for i := range m.reviews {
		if m.reviews[i].ID == review.ID {
			m.reviews[i] = *review
		}
	}
	return nil
}

func (m *mockReviewRepo) Delete(ctx context.Context, id uint) error {
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			m.reviews = append(m.reviews[:i], m.reviews[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockReviewRepo) FindByID(ctx context.Context, id uint) (*models.Review, error) {
	for i := range m.reviews {
		if m.reviews[i].ID == id {
			return &m.reviews[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) FindByBooking(ctx context.Context, bookingID uint) (*models.Review, error) {
	for i := range m.reviews {
		if m.reviews[i].BookingID == bookingID {
			return &m.reviews[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockReviewRepo) FindByRoom(ctx context.Context, roomID uint) ([]models.Review, error) {
	var out []models.Review
	for _, r := range m.reviews {
		if r.RoomID == roomID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) FindByOwnerRooms(ctx context.Context, ownerID uint) ([]models.Review, error) {
	return nil, nil
}

func (m *mockReviewRepo) Aggregate(ctx context.Context, roomID uint) (float64, int64, error) {
	if m.aggregateFn != nil {
		return m.aggregateFn(ctx, roomID)
	}
	var sum, count int64
	for _, r := range m.reviews {
		if r.RoomID == roomID {
			sum += int64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	users []models.User
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = uint(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Save(ctx context.Context, user *models.User) error {
	for i := range m.users {
		if m.users[i].ID == user.ID {
			m.users[i] = *user
		}
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	return m.users, nil
}

func (m *mockUserRepo) UpdateActive(ctx context.Context, id uint, active bool) error {
	for i := range m.users {
		if m.users[i].ID == id {
			m.users[i].Active = active
		}
	}
	return nil
}
