package check_spot_availability

import "time"

// Request проверка места на окно [CheckIn, CheckOut)
type Request struct {
	ParkingID  string
	SpotNumber string
	CheckIn    time.Time
	CheckOut   time.Time
}

// Response результат проверки
type Response struct {
	Available bool
	// ConflictingBookingID первое пересекающееся бронирование, если место занято
	ConflictingBookingID *string
	// Degraded true, если запрос упал и результат дан политикой fail-open
	Degraded bool
}
