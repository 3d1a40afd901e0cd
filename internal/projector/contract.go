package projector

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

// CatalogClient источник статического каталога парковок
type CatalogClient interface {
	GetParkingSpots(ctx context.Context) ([]domain.ParkingSpot, error)
}

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	InitializeMissing(ctx context.Context, spots []domain.ParkingSpot) (int, error)
	SubscribeAll(ctx context.Context) *availability.Subscription[map[string]domain.ParkingAvailability]
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
