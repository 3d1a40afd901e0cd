package vehicles

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/service/vehicles/models"
)

type VehicleService interface {
	List(ctx context.Context, userID string) (*models.VehicleListResponse, error)
	Add(ctx context.Context, req *models.AddVehicleRequest) (*models.VehicleResponse, error)
	Delete(ctx context.Context, userID, vehicleID string) error
	SetDefault(ctx context.Context, userID, vehicleID string) error
	Presets(ctx context.Context) *models.VehicleListResponse
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
