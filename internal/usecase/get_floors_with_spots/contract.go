package get_floors_with_spots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// CatalogProvider источник каталога парковок (снимок проектора)
type CatalogProvider interface {
	Spot(id string) (domain.ParkingSpot, bool)
}

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	Get(ctx context.Context, spotID string) (*domain.ParkingAvailability, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByParking(ctx context.Context, parkingID string, floorNumber *int, statuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// FloorGenerator стратегия построения этажей, когда в каталоге их нет
type FloorGenerator interface {
	Generate(vehicleType domain.VehicleType) []domain.FloorData
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
