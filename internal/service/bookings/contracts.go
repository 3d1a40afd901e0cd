package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetByUser(ctx context.Context, filter domain.UserBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, updatedAt time.Time, actualExitTime *time.Time) error
}

// AvailabilityService возврат счётчика при завершении/отмене
type AvailabilityService interface {
	IncreaseInTx(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int, caps domain.Capacities) error
}

// CatalogProvider каталог парковок (ёмкости для ограничения возврата)
type CatalogProvider interface {
	Spot(id string) (domain.ParkingSpot, bool)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
