package get_floors_with_spots

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

// UseCase use case для построения схемы этажей парковки
type UseCase struct {
	catalog      CatalogProvider
	availability AvailabilityService
	bookingRepo  BookingRepository
	generator    FloorGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogProvider,
	availabilityService AvailabilityService,
	bookingRepo BookingRepository,
	generator FloorGenerator,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		availability: availabilityService,
		bookingRepo:  bookingRepo,
		generator:    generator,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute схема этажей носит справочный характер: ошибки чтения счетчиков и броней
// логируются, сетка строится по тому, что удалось прочитать
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	vehicleType, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetFloorsWithSpots: validation failed: %v", err)
		return nil, err
	}

	spot, ok := uc.catalog.Spot(req.ParkingID)
	if !ok {
		uc.logger.Warn("GetFloorsWithSpots: parking %s not found", req.ParkingID)
		return nil, ErrParkingNotFound
	}

	if len(spot.Floors) == 0 {
		uc.logger.Info("GetFloorsWithSpots: parking %s has no floors, using generated layout", req.ParkingID)
		return &Response{
			ParkingID: req.ParkingID,
			Floors:    uc.generator.Generate(vehicleType),
			Synthetic: true,
		}, nil
	}

	record, err := uc.availability.Get(ctx, req.ParkingID)
	if err != nil {
		if !errors.Is(err, availability.ErrNoAvailability) {
			uc.logger.Warn("GetFloorsWithSpots: failed to read availability of %s: %v", req.ParkingID, err)
		}
		record = nil
	}

	bookings, err := uc.bookingRepo.GetByParking(ctx, req.ParkingID, nil, domain.CapacityHoldingStatuses)
	if err != nil {
		uc.logger.Warn("GetFloorsWithSpots: failed to read bookings of %s: %v", req.ParkingID, err)
		bookings = nil
	}

	now := uc.timeProvider.Now()
	floors := make([]domain.FloorData, 0, len(spot.Floors))
	for _, f := range spot.Floors {
		available := f.TotalSpots
		if record != nil {
			if v, ok := record.FloorAvailability[domain.FloorKey(f.FloorNumber)]; ok {
				available = v
			}
		}
		floors = append(floors, buildFloorGrid(f, available, bookedSpots(bookings, f.FloorNumber, now), vehicleType))
	}

	return &Response{
		ParkingID: req.ParkingID,
		Floors:    floors,
	}, nil
}
