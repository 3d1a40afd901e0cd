package vehicles

import "errors"

var (
	// ErrVehicleNotFound возвращается, когда автомобиль не найден у пользователя
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
