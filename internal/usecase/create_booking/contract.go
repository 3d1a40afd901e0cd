package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	GetBySpot(ctx context.Context, filter domain.BookingSpotFilter) ([]*domain.Booking, error)
}

// AvailabilityService списание счётчика в транзакции бронирования
type AvailabilityService interface {
	DecreaseInTx(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int) error
}

// CatalogProvider каталог парковок
type CatalogProvider interface {
	Spot(id string) (domain.ParkingSpot, bool)
}

// IdentityProvider текущий пользователь запроса
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счётчик созданных бронирований
type Metrics interface {
	IncBookingsCreated(result string)
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
