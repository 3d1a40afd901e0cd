package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	availability AvailabilityService
	catalog      CatalogProvider
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	availability AvailabilityService,
	catalog CatalogProvider,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		availability: availability,
		catalog:      catalog,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только своё бронирование
func (s *Service) GetByID(ctx context.Context, id string, userID string) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%s not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает бронирования пользователя для вкладки ongoing/history
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	switch req.Scope {
	case models.ScopeOngoing, "":
		return s.GetOngoing(ctx, req.UserID)
	case models.ScopeHistory:
		return s.GetHistory(ctx, req.UserID)
	default:
		s.logger.Warn("GetUserBookings: invalid scope=%s for user=%s", req.Scope, req.UserID)
		return nil, fmt.Errorf("%w: invalid scope %q", ErrInvalidInput, req.Scope)
	}
}

// GetOngoing текущие и предстоящие бронирования, ближайшие первыми
func (s *Service) GetOngoing(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	return s.list(ctx, "GetOngoing", domain.UserBookingsFilter{
		UserID:   userID,
		Statuses: domain.OngoingStatuses,
		OrderBy:  "entry_time ASC",
	})
}

// GetHistory завершённые и отменённые бронирования, новые первыми
func (s *Service) GetHistory(ctx context.Context, userID string) (*models.BookingListResponse, error) {
	return s.list(ctx, "GetHistory", domain.UserBookingsFilter{
		UserID:   userID,
		Statuses: domain.HistoryStatuses,
		OrderBy:  "created_at DESC",
	})
}

func (s *Service) list(ctx context.Context, op string, filter domain.UserBookingsFilter) (*models.BookingListResponse, error) {
	if filter.UserID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByUser(ctx, filter)
	if err != nil {
		s.logger.Error("%s: repository error for user=%s: %v", op, filter.UserID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: fetched %d bookings for user=%s", op, len(bookings), filter.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование пользователя
func (s *Service) Cancel(ctx context.Context, bookingID string, userID string) error {
	return s.UpdateStatus(ctx, bookingID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: string(domain.StatusCancelled),
	})
}

// Complete завершает бронирование (выезд с парковки)
func (s *Service) Complete(ctx context.Context, bookingID string, userID string) error {
	return s.UpdateStatus(ctx, bookingID, &models.UpdateStatusRequest{
		UserID: userID,
		Status: string(domain.StatusCompleted),
	})
}

// UpdateStatus меняет статус бронирования по таблице переходов
// Переход из CONFIRMED/ACTIVE в COMPLETED/CANCELLED возвращает место в той же транзакции
func (s *Service) UpdateStatus(ctx context.Context, bookingID string, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by user=%s", bookingID, req.Status, req.UserID)

	next, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}

		if booking.UserID != req.UserID {
			return ErrAccessDenied
		}

		if !booking.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		now := s.timeProvider.Now()
		var actualExitTime *time.Time
		if next == domain.StatusCompleted {
			actualExitTime = &now
		}

		if err := s.bookingRepo.UpdateStatus(ctx, bookingID, next, now, actualExitTime); err != nil {
			return err
		}

		if booking.ReleasesCapacity(next) {
			return s.release(ctx, booking)
		}
		return nil
	})
	if err != nil {
		return s.mapUpdateError(bookingID, err)
	}

	s.logger.Info("UpdateStatus: booking id=%s moved to status=%s", bookingID, next)
	return nil
}

// release возвращает счётчик класса и этажа; отсутствие записи доступности не ошибка
func (s *Service) release(ctx context.Context, booking *domain.Booking) error {
	spot, ok := s.catalog.Spot(booking.ParkingID)
	if !ok {
		s.logger.Warn("UpdateStatus: parking id=%s not in catalog, counter for booking id=%s not released",
			booking.ParkingID, booking.ID)
		return nil
	}

	// Этаж возвращается только если он списывался при создании
	err := s.availability.IncreaseInTx(ctx, booking.ParkingID, booking.VehicleType, booking.FloorNumber, spot.Capacities())
	if errors.Is(err, availability.ErrNoAvailability) {
		s.logger.Warn("UpdateStatus: no availability record for parking id=%s, release skipped", booking.ParkingID)
		return nil
	}
	return err
}

func (s *Service) mapUpdateError(bookingID string, err error) error {
	switch {
	case errors.Is(err, bookingRepo.ErrBookingNotFound):
		s.logger.Warn("UpdateStatus: booking id=%s not found", bookingID)
		return ErrBookingNotFound
	case errors.Is(err, ErrAccessDenied):
		s.logger.Warn("UpdateStatus: access denied to booking id=%s", bookingID)
		return ErrAccessDenied
	case errors.Is(err, ErrInvalidTransition):
		s.logger.Warn("UpdateStatus: booking id=%s: %v", bookingID, err)
		return err
	case availability.IsTransient(err):
		s.logger.Warn("UpdateStatus: transient error for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: %v", ErrTransientIO, err)
	default:
		s.logger.Error("UpdateStatus: failed for booking id=%s: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - %v", ErrInternal, err)
	}
}
