package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/changefeed"
)

// Repository хранилище счётчиков доступности
type Repository interface {
	UpsertBatch(ctx context.Context, records []domain.ParkingAvailability) error
	GetBySpotID(ctx context.Context, spotID string) (*domain.ParkingAvailability, error)
	GetAll(ctx context.Context) ([]*domain.ParkingAvailability, error)
	ListSpotIDs(ctx context.Context) ([]string, error)
	ApplyUpdate(ctx context.Context, spotID string, upd domain.AvailabilityUpdate) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ChangeFeed источник уведомлений об изменениях записей доступности
type ChangeFeed interface {
	Subscribe(handler func(changefeed.Event)) (unsubscribe func())
}

// Metrics счётчики транзакций и подписок
type Metrics interface {
	IncAvailabilityTx(op, result string)
	AddSubscriptions(kind string, delta int)
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
