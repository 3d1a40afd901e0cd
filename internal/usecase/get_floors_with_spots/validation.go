package get_floors_with_spots

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (domain.VehicleType, error) {
	if req.ParkingID == "" {
		return "", fmt.Errorf("%w: parkingId is required", ErrInvalidInput)
	}

	// Тип ТС необязателен, по умолчанию легковой
	if req.VehicleType == "" {
		return domain.VehicleFourWheeler, nil
	}

	vt, err := domain.ParseVehicleType(req.VehicleType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return vt, nil
}
