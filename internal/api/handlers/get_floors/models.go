package get_floors

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	getFloors "github.com/m04kA/SMC-ParkingService/internal/usecase/get_floors_with_spots"
)

// FloorsResponse HTTP response model
type FloorsResponse struct {
	ParkingID string  `json:"parkingId"`
	Synthetic bool    `json:"synthetic"`
	Floors    []Floor `json:"floors"`
}

// Floor этаж со схемой мест
type Floor struct {
	FloorNumber    int     `json:"floorNumber"`
	Name           string  `json:"name"`
	TotalSpots     int     `json:"totalSpots"`
	AvailableSpots int     `json:"availableSpots"`
	OccupancyRate  float64 `json:"occupancyRate"`
	Spots          []Slot  `json:"spots"`
}

// Slot ячейка схемы этажа
type Slot struct {
	ID          string  `json:"id"`
	SpotNumber  string  `json:"spotNumber"`
	FloorNumber int     `json:"floorNumber"`
	IsAvailable bool    `json:"isAvailable"`
	IsBooked    bool    `json:"isBooked"`
	BookedUntil *string `json:"bookedUntil,omitempty"`
	VehicleType string  `json:"vehicleType"`
	Row         int     `json:"row"`
	Column      int     `json:"column"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFloors.Response) *FloorsResponse {
	floors := make([]Floor, 0, len(resp.Floors))
	for i := range resp.Floors {
		floors = append(floors, fromDomainFloor(&resp.Floors[i]))
	}

	return &FloorsResponse{
		ParkingID: resp.ParkingID,
		Synthetic: resp.Synthetic,
		Floors:    floors,
	}
}

func fromDomainFloor(f *domain.FloorData) Floor {
	spots := make([]Slot, 0, len(f.Spots))
	for _, s := range f.Spots {
		slot := Slot{
			ID:          s.ID,
			SpotNumber:  s.SpotNumber,
			FloorNumber: s.FloorNumber,
			IsAvailable: s.IsAvailable,
			IsBooked:    s.IsBooked,
			VehicleType: string(s.VehicleType),
			Row:         s.Row,
			Column:      s.Column,
		}
		if s.BookedUntil != nil {
			until := s.BookedUntil.Format(time.RFC3339)
			slot.BookedUntil = &until
		}
		spots = append(spots, slot)
	}

	return Floor{
		FloorNumber:    f.FloorNumber,
		Name:           f.Name,
		TotalSpots:     f.TotalSpots,
		AvailableSpots: f.AvailableSpots,
		OccupancyRate:  f.OccupancyRate(),
		Spots:          spots,
	}
}
