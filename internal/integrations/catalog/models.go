package catalog

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// ParkingSpotsResponse содержимое parking-spots.json
type ParkingSpotsResponse struct {
	ParkingSpots    []ParkingSpot `json:"parkingSpots"`
	AmenitiesMaster []Amenity     `json:"amenitiesMaster"`
}

// ParkingSpot запись каталога парковок
type ParkingSpot struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Address                 string         `json:"address"`
	Latitude                float64        `json:"latitude"`
	Longitude               float64        `json:"longitude"`
	PricePerHourTwoWheeler  float64        `json:"pricePerHourTwoWheeler"`
	PricePerHourFourWheeler float64        `json:"pricePerHourFourWheeler"`
	PricePerHourHeavy       float64        `json:"pricePerHourHeavy"`
	PricePerDayTwoWheeler   float64        `json:"pricePerDayTwoWheeler"`
	PricePerDayFourWheeler  float64        `json:"pricePerDayFourWheeler"`
	PricePerDayHeavy        float64        `json:"pricePerDayHeavy"`
	TotalSpotsTwoWheeler    int            `json:"totalSpotsTwoWheeler"`
	TotalSpotsFourWheeler   int            `json:"totalSpotsFourWheeler"`
	TotalSpotsHeavy         int            `json:"totalSpotsHeavy"`
	Floors                  []Floor        `json:"floors"`
	Amenities               []string       `json:"amenities"`
	Images                  []string       `json:"images"`
	Rating                  float64        `json:"rating"`
	ReviewCount             int            `json:"reviewCount"`
	OperatingHours          OperatingHours `json:"operatingHours"`
	IsActive                bool           `json:"isActive"`
}

type Floor struct {
	FloorNumber     int     `json:"floorNumber"`
	Name            string  `json:"name"`
	TotalSpots      int     `json:"totalSpots"`
	PriceMultiplier float64 `json:"priceMultiplier"`
}

type OperatingHours struct {
	Is24Hours  bool   `json:"is24Hours"`
	OpenTime   string `json:"openTime"`
	CloseTime  string `json:"closeTime"`
	ClosedDays []int  `json:"closedDays"`
}

type Amenity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// VehiclesResponse содержимое vehicles.json
type VehiclesResponse struct {
	VehicleTypes   []VehicleTypeInfo `json:"vehicleTypes"`
	Brands         []Brand           `json:"brands"`
	PresetVehicles []PresetVehicle   `json:"presetVehicles"`
	Colors         []Color           `json:"colors"`
}

type VehicleTypeInfo struct {
	Type        string `json:"type"`
	DisplayName string `json:"displayName"`
	Icon        string `json:"icon"`
}

type Brand struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	LogoURL      string   `json:"logoUrl"`
	VehicleTypes []string `json:"vehicleTypes"`
}

type PresetVehicle struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Brand    string `json:"brand"`
	Model    string `json:"model"`
	ImageURL string `json:"imageUrl"`
}

type Color struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// ToDomain конвертирует запись каталога в доменную модель
// Доступные места до наложения счётчиков равны общему количеству
func (p ParkingSpot) ToDomain() domain.ParkingSpot {
	floors := make([]domain.Floor, 0, len(p.Floors))
	for _, f := range p.Floors {
		multiplier := f.PriceMultiplier
		if multiplier == 0 {
			multiplier = 1
		}
		floors = append(floors, domain.Floor{
			FloorNumber:     f.FloorNumber,
			Name:            f.Name,
			TotalSpots:      f.TotalSpots,
			AvailableSpots:  f.TotalSpots,
			PriceMultiplier: multiplier,
		})
	}

	return domain.ParkingSpot{
		ID:                        p.ID,
		Name:                      p.Name,
		Address:                   p.Address,
		Latitude:                  p.Latitude,
		Longitude:                 p.Longitude,
		PricePerHourTwoWheeler:    p.PricePerHourTwoWheeler,
		PricePerHourFourWheeler:   p.PricePerHourFourWheeler,
		PricePerHourHeavy:         p.PricePerHourHeavy,
		PricePerDayTwoWheeler:     p.PricePerDayTwoWheeler,
		PricePerDayFourWheeler:    p.PricePerDayFourWheeler,
		PricePerDayHeavy:          p.PricePerDayHeavy,
		TotalSpotsTwoWheeler:      p.TotalSpotsTwoWheeler,
		TotalSpotsFourWheeler:     p.TotalSpotsFourWheeler,
		TotalSpotsHeavy:           p.TotalSpotsHeavy,
		AvailableSpotsTwoWheeler:  p.TotalSpotsTwoWheeler,
		AvailableSpotsFourWheeler: p.TotalSpotsFourWheeler,
		AvailableSpotsHeavy:       p.TotalSpotsHeavy,
		Floors:                    floors,
		Amenities:                 p.Amenities,
		Images:                    p.Images,
		Rating:                    p.Rating,
		ReviewCount:               p.ReviewCount,
		OperatingHours: domain.OperatingHours{
			Is24Hours:  p.OperatingHours.Is24Hours,
			OpenTime:   p.OperatingHours.OpenTime,
			CloseTime:  p.OperatingHours.CloseTime,
			ClosedDays: p.OperatingHours.ClosedDays,
		},
		IsActive: p.IsActive,
	}
}

// ToDomain конвертирует пресет в доменную модель; пресеты с неизвестным типом пропускаются
func (p PresetVehicle) ToDomain() (domain.Vehicle, bool) {
	vt, err := domain.ParseVehicleType(p.Type)
	if err != nil {
		return domain.Vehicle{}, false
	}
	return domain.Vehicle{
		ID:       p.ID,
		Type:     vt,
		Brand:    p.Brand,
		Model:    p.Model,
		IsPreset: true,
	}, true
}
