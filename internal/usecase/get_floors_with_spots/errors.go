package get_floors_with_spots

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_floors_with_spots: invalid input data")

	// ErrParkingNotFound возвращается, если парковки нет в каталоге
	ErrParkingNotFound = errors.New("get_floors_with_spots: parking not found")
)
