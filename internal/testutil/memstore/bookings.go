package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
)

// BookingStore бронирования в памяти
// QueryErr подменяет ответ запросов списков (GetBySpot, GetByParking, GetByUser)
type BookingStore struct {
	mu       sync.Mutex
	bookings map[string]domain.Booking
	QueryErr error
}

func NewBookingStore() *BookingStore {
	return &BookingStore{bookings: map[string]domain.Booking{}}
}

func (s *BookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.bookings[booking.ID]; exists {
		return nil, fmt.Errorf("%w: %s", bookingRepo.ErrDuplicateID, booking.ID)
	}
	s.bookings[booking.ID] = *booking
	return booking, nil
}

func (s *BookingStore) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return &b, nil
}

func (s *BookingStore) GetBySpot(_ context.Context, filter domain.BookingSpotFilter) ([]*domain.Booking, error) {
	return s.filter(func(b domain.Booking) bool {
		return b.ParkingID == filter.ParkingID &&
			b.SpotNumber == filter.SpotNumber &&
			hasStatus(filter.Statuses, b.Status)
	}, func(a, b *domain.Booking) bool { return a.EntryTime.Before(b.EntryTime) })
}

func (s *BookingStore) GetByParking(_ context.Context, parkingID string, floorNumber *int, statuses []domain.BookingStatus) ([]*domain.Booking, error) {
	return s.filter(func(b domain.Booking) bool {
		return b.ParkingID == parkingID &&
			(floorNumber == nil || (b.FloorNumber != nil && *b.FloorNumber == *floorNumber)) &&
			hasStatus(statuses, b.Status)
	}, func(a, b *domain.Booking) bool { return a.SpotNumber < b.SpotNumber })
}

func (s *BookingStore) GetByUser(_ context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error) {
	less := func(a, b *domain.Booking) bool { return a.CreatedAt.After(b.CreatedAt) }
	if filter.OrderBy == "entry_time ASC" {
		less = func(a, b *domain.Booking) bool { return a.EntryTime.Before(b.EntryTime) }
	}
	return s.filter(func(b domain.Booking) bool {
		return b.UserID == filter.UserID && hasStatus(filter.Statuses, b.Status)
	}, less)
}

func (s *BookingStore) UpdateStatus(_ context.Context, id string, status domain.BookingStatus, updatedAt time.Time, actualExitTime *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = updatedAt
	if actualExitTime != nil {
		t := *actualExitTime
		b.ActualExitTime = &t
	}
	s.bookings[id] = b
	return nil
}

// Put кладёт бронирование напрямую (подготовка данных в тестах)
func (s *BookingStore) Put(b domain.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings[b.ID] = b
}

// Len количество сохранённых бронирований
func (s *BookingStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

func (s *BookingStore) filter(match func(domain.Booking) bool, less func(a, b *domain.Booking) bool) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}

	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if match(b) {
			b := b
			result = append(result, &b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return less(result[i], result[j]) })
	return result, nil
}

func (s *BookingStore) snapshot() func() {
	s.mu.Lock()
	saved := make(map[string]domain.Booking, len(s.bookings))
	for k, v := range s.bookings {
		saved[k] = v
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.bookings = saved
		s.mu.Unlock()
	}
}

func hasStatus(statuses []domain.BookingStatus, status domain.BookingStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, st := range statuses {
		if st == status {
			return true
		}
	}
	return false
}
