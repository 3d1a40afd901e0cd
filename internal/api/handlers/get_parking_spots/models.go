package get_parking_spots

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/projector"
)

// ParkingSpotResponse HTTP response model
type ParkingSpotResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Distance  *float64 `json:"distanceKm,omitempty"`

	PricePerHourTwoWheeler  float64 `json:"pricePerHourTwoWheeler"`
	PricePerHourFourWheeler float64 `json:"pricePerHourFourWheeler"`
	PricePerHourHeavy       float64 `json:"pricePerHourHeavy"`
	PricePerDayTwoWheeler   float64 `json:"pricePerDayTwoWheeler"`
	PricePerDayFourWheeler  float64 `json:"pricePerDayFourWheeler"`
	PricePerDayHeavy        float64 `json:"pricePerDayHeavy"`

	TotalSpotsTwoWheeler      int `json:"totalSpotsTwoWheeler"`
	TotalSpotsFourWheeler     int `json:"totalSpotsFourWheeler"`
	TotalSpotsHeavy           int `json:"totalSpotsHeavy"`
	AvailableSpotsTwoWheeler  int `json:"availableSpotsTwoWheeler"`
	AvailableSpotsFourWheeler int `json:"availableSpotsFourWheeler"`
	AvailableSpotsHeavy       int `json:"availableSpotsHeavy"`

	AvailabilityStatus string         `json:"availabilityStatus"`
	Floors             []Floor        `json:"floors"`
	Amenities          []string       `json:"amenities"`
	Images             []string       `json:"images"`
	Rating             float64        `json:"rating"`
	ReviewCount        int            `json:"reviewCount"`
	OperatingHours     OperatingHours `json:"operatingHours"`
	IsActive           bool           `json:"isActive"`
}

type Floor struct {
	FloorNumber     int     `json:"floorNumber"`
	Name            string  `json:"name"`
	TotalSpots      int     `json:"totalSpots"`
	AvailableSpots  int     `json:"availableSpots"`
	PriceMultiplier float64 `json:"priceMultiplier"`
}

type OperatingHours struct {
	Is24Hours  bool   `json:"is24Hours"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	ClosedDays []int  `json:"closedDays"`
}

// ParkingSpotListResponse ответ со списком парковок
type ParkingSpotListResponse struct {
	ParkingSpots []ParkingSpotResponse `json:"parkingSpots"`
}

// FromDomainSpot конвертирует доменную модель в ответ
func FromDomainSpot(s domain.ParkingSpot) ParkingSpotResponse {
	floors := make([]Floor, 0, len(s.Floors))
	for _, f := range s.Floors {
		floors = append(floors, Floor{
			FloorNumber:     f.FloorNumber,
			Name:            f.Name,
			TotalSpots:      f.TotalSpots,
			AvailableSpots:  f.AvailableSpots,
			PriceMultiplier: f.PriceMultiplier,
		})
	}

	return ParkingSpotResponse{
		ID:                        s.ID,
		Name:                      s.Name,
		Address:                   s.Address,
		Latitude:                  s.Latitude,
		Longitude:                 s.Longitude,
		PricePerHourTwoWheeler:    s.PricePerHourTwoWheeler,
		PricePerHourFourWheeler:   s.PricePerHourFourWheeler,
		PricePerHourHeavy:         s.PricePerHourHeavy,
		PricePerDayTwoWheeler:     s.PricePerDayTwoWheeler,
		PricePerDayFourWheeler:    s.PricePerDayFourWheeler,
		PricePerDayHeavy:          s.PricePerDayHeavy,
		TotalSpotsTwoWheeler:      s.TotalSpotsTwoWheeler,
		TotalSpotsFourWheeler:     s.TotalSpotsFourWheeler,
		TotalSpotsHeavy:           s.TotalSpotsHeavy,
		AvailableSpotsTwoWheeler:  s.AvailableSpotsTwoWheeler,
		AvailableSpotsFourWheeler: s.AvailableSpotsFourWheeler,
		AvailableSpotsHeavy:       s.AvailableSpotsHeavy,
		AvailabilityStatus:        string(s.AvailabilityStatus()),
		Floors:                    floors,
		Amenities:                 s.Amenities,
		Images:                    s.Images,
		Rating:                    s.Rating,
		ReviewCount:               s.ReviewCount,
		OperatingHours: OperatingHours{
			Is24Hours:  s.OperatingHours.Is24Hours,
			OpenTime:   s.OperatingHours.OpenTime,
			CloseTime:  s.OperatingHours.CloseTime,
			ClosedDays: s.OperatingHours.ClosedDays,
		},
		IsActive: s.IsActive,
	}
}

// FromDomainList конвертирует снимок проектора в ответ
func FromDomainList(spots []domain.ParkingSpot) *ParkingSpotListResponse {
	result := make([]ParkingSpotResponse, 0, len(spots))
	for _, s := range spots {
		result = append(result, FromDomainSpot(s))
	}
	return &ParkingSpotListResponse{ParkingSpots: result}
}

// FromNearby конвертирует результат поиска рядом с точкой
func FromNearby(spots []projector.NearbySpot) *ParkingSpotListResponse {
	result := make([]ParkingSpotResponse, 0, len(spots))
	for _, n := range spots {
		resp := FromDomainSpot(n.Spot)
		distance := n.DistanceKm
		resp.Distance = &distance
		result = append(result, resp)
	}
	return &ParkingSpotListResponse{ParkingSpots: result}
}
