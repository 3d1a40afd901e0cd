package check_spot_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_spot_availability: invalid input data")

	// ErrPersistenceFailure возвращается, если запрос бронирований упал, а политика fail-closed
	ErrPersistenceFailure = errors.New("check_spot_availability: failed to query bookings")
)
