package availability

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	availabilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/availability"
)

var (
	// ErrNoAvailability для парковки нет записи доступности
	ErrNoAvailability = errors.New("availability service: no availability record")

	// ErrNoCapacity счётчик класса автомобиля уже равен нулю
	ErrNoCapacity = errors.New("availability service: no capacity left")

	// ErrTransientIO временная ошибка хранилища (конфликт сериализации, обрыв соединения, таймаут)
	// Повтор - решение вызывающей стороны
	ErrTransientIO = errors.New("availability service: transient storage error")

	// ErrPersistenceFailure прочие ошибки хранилища
	ErrPersistenceFailure = errors.New("availability service: persistence failure")

	// ErrInvalidInput некорректные параметры вызова
	ErrInvalidInput = errors.New("availability service: invalid input")
)

// IsTransient true для ошибок, которые имеет смысл повторить
// SQLSTATE класса 40 (serialization_failure, deadlock_detected) и 08 (connection exception)
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTransientIO) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "40", "08":
			return true
		}
	}
	return false
}

// classify приводит ошибку нижнего уровня к типизированной ошибке сервиса
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNoAvailability),
		errors.Is(err, ErrNoCapacity),
		errors.Is(err, ErrTransientIO),
		errors.Is(err, ErrPersistenceFailure),
		errors.Is(err, ErrInvalidInput):
		return err
	case errors.Is(err, availabilityRepo.ErrAvailabilityNotFound):
		return ErrNoAvailability
	case IsTransient(err):
		return fmt.Errorf("%w: %w", ErrTransientIO, err)
	default:
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrNoAvailability):
		return "no_availability"
	case errors.Is(err, ErrNoCapacity):
		return "no_capacity"
	case errors.Is(err, ErrTransientIO):
		return "transient"
	default:
		return "failed"
	}
}
