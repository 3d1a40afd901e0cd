package create_booking

import "errors"

var (
	// ErrNotAuthenticated возвращается, когда пользователь не определён
	ErrNotAuthenticated = errors.New("create_booking: not authenticated")

	// ErrParkingNotFound возвращается, когда парковки нет в каталоге
	ErrParkingNotFound = errors.New("create_booking: parking not found")

	// ErrSpotTaken возвращается, когда место уже занято на пересекающееся время
	ErrSpotTaken = errors.New("create_booking: spot is already booked for this time")

	// ErrNoCapacity возвращается, когда мест для класса автомобиля не осталось
	ErrNoCapacity = errors.New("create_booking: no capacity left")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrTransientIO временная ошибка хранилища, запрос можно повторить
	ErrTransientIO = errors.New("create_booking: transient storage error")

	// ErrIDExhausted возвращается, если не удалось подобрать свободный код бронирования
	ErrIDExhausted = errors.New("create_booking: no free booking id")

	// ErrPersistenceFailure возвращается, если бронирование не удалось сохранить
	ErrPersistenceFailure = errors.New("create_booking: persistence failure")
)
