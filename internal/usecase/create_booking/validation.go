package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// validated нормализованные поля запроса
type validated struct {
	vehicleType   domain.VehicleType
	paymentMethod domain.PaymentMethod
	hours         int
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) (*validated, error) {
	if req.ParkingID == "" {
		return nil, fmt.Errorf("%w: parkingId is required", ErrInvalidInput)
	}

	if req.SpotNumber == "" {
		return nil, fmt.Errorf("%w: spotNumber is required", ErrInvalidInput)
	}

	vt, err := domain.ParseVehicleType(req.VehicleType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	pm, ok := domain.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}

	if req.EntryTime.IsZero() || req.ExitTime.IsZero() {
		return nil, fmt.Errorf("%w: entryTime and exitTime are required", ErrInvalidInput)
	}

	if !req.ExitTime.After(req.EntryTime) {
		return nil, fmt.Errorf("%w: exitTime must be after entryTime", ErrInvalidInput)
	}

	hours := durationHours(req.EntryTime, req.ExitTime)
	if hours < domain.MinBookingHours || hours > domain.MaxBookingHours {
		return nil, fmt.Errorf("%w: duration must be %d-%d hours, got %d",
			ErrInvalidInput, domain.MinBookingHours, domain.MaxBookingHours, hours)
	}

	if req.Discount < 0 {
		return nil, fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}

	if req.Price != nil && req.Price.TotalPrice < 0 {
		return nil, fmt.Errorf("%w: totalPrice must not be negative", ErrInvalidInput)
	}

	return &validated{vehicleType: vt, paymentMethod: pm, hours: hours}, nil
}
