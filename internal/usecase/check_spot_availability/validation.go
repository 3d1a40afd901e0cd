package check_spot_availability

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ParkingID == "" {
		return fmt.Errorf("%w: parkingId is required", ErrInvalidInput)
	}

	if req.SpotNumber == "" {
		return fmt.Errorf("%w: spotNumber is required", ErrInvalidInput)
	}

	if req.CheckIn.IsZero() || req.CheckOut.IsZero() {
		return fmt.Errorf("%w: checkIn and checkOut are required", ErrInvalidInput)
	}

	if !req.CheckOut.After(req.CheckIn) {
		return fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}

	return nil
}
