package availability_ws

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

type AvailabilityService interface {
	SubscribeOne(ctx context.Context, spotID string) *availability.Subscription[*domain.ParkingAvailability]
	SubscribeAll(ctx context.Context) *availability.Subscription[map[string]domain.ParkingAvailability]
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
