package check_spot_availability

import (
	"context"

	checkSpot "github.com/m04kA/SMC-ParkingService/internal/usecase/check_spot_availability"
)

type CheckSpotUseCase interface {
	Execute(ctx context.Context, req *checkSpot.Request) (*checkSpot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
