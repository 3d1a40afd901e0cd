package get_parking_spots

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/projector"
)

// Projector объединенный каталог с живыми счетчиками
type Projector interface {
	Snapshot() []domain.ParkingSpot
	Spot(id string) (domain.ParkingSpot, bool)
	NearLocation(lat, lon, radiusKm float64) []projector.NearbySpot
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
