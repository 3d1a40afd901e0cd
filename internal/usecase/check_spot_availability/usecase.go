package check_spot_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase проверка, свободно ли конкретное место на заданное время
type UseCase struct {
	bookingRepo BookingRepository
	failOpen    bool
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
// failOpen - при ошибке запроса считать место свободным
func NewUseCase(bookingRepo BookingRepository, failOpen bool, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		failOpen:    failOpen,
		logger:      logger,
	}
}

// Execute учитывает только CONFIRMED/ACTIVE бронирования; интервалы полуоткрытые,
// бронирования встык не конфликтуют
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckSpotAvailability: validation failed: %v", err)
		return nil, err
	}

	bookings, err := uc.bookingRepo.GetBySpot(ctx, domain.BookingSpotFilter{
		ParkingID:  req.ParkingID,
		SpotNumber: req.SpotNumber,
		Statuses:   domain.CapacityHoldingStatuses,
	})
	if err != nil {
		if uc.failOpen {
			uc.logger.Warn("CheckSpotAvailability: query failed for %s/%s, assuming available: %v",
				req.ParkingID, req.SpotNumber, err)
			return &Response{Available: true, Degraded: true}, nil
		}
		uc.logger.Error("CheckSpotAvailability: query failed for %s/%s: %v", req.ParkingID, req.SpotNumber, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}

	for _, b := range bookings {
		if b.HoldsCapacity() && b.Overlaps(req.CheckIn, req.CheckOut) {
			id := b.ID
			return &Response{Available: false, ConflictingBookingID: &id}, nil
		}
	}

	return &Response{Available: true}, nil
}
