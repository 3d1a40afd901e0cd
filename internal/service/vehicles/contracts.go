package vehicles

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/catalog"
)

// VehicleRepository интерфейс репозитория автомобилей
type VehicleRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*domain.Vehicle, error)
	Create(ctx context.Context, v *domain.Vehicle, createdAt time.Time) error
	Delete(ctx context.Context, userID, vehicleID string) error
	SetDefault(ctx context.Context, userID, vehicleID string) error
}

// CatalogClient источник справочника автомобилей
type CatalogClient interface {
	GetVehiclesData(ctx context.Context) (*catalog.VehiclesResponse, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
