package get_floors

import (
	"context"

	getFloors "github.com/m04kA/SMC-ParkingService/internal/usecase/get_floors_with_spots"
)

type GetFloorsUseCase interface {
	Execute(ctx context.Context, req *getFloors.Request) (*getFloors.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
