package get_floors_with_spots

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// Request модель запроса схемы этажей
type Request struct {
	ParkingID   string
	VehicleType string
}

// Response модель ответа со схемой этажей
type Response struct {
	ParkingID string
	Floors    []domain.FloorData
	Synthetic bool // этажи сгенерированы, в каталоге их нет
}
