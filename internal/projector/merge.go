package projector

import (
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// NearbySpot парковка с расстоянием до точки запроса
type NearbySpot struct {
	Spot       domain.ParkingSpot
	DistanceKm float64
}

// merge накладывает счетчики на запись каталога; отсутствующие класс или этаж считаются свободными
func merge(spot domain.ParkingSpot, record *domain.ParkingAvailability) domain.ParkingSpot {
	out := spot.WithFullAvailability()
	if record == nil {
		return out
	}

	out.AvailableSpotsTwoWheeler = clamp(record.AvailableTwoWheeler, out.TotalSpotsTwoWheeler)
	out.AvailableSpotsFourWheeler = clamp(record.AvailableFourWheeler, out.TotalSpotsFourWheeler)
	out.AvailableSpotsHeavy = clamp(record.AvailableHeavy, out.TotalSpotsHeavy)

	for i := range out.Floors {
		if v, ok := record.FloorAvailability[domain.FloorKey(out.Floors[i].FloorNumber)]; ok {
			out.Floors[i].AvailableSpots = clamp(v, out.Floors[i].TotalSpots)
		}
	}

	return out
}

func mergeAll(catalog []domain.ParkingSpot, records map[string]domain.ParkingAvailability) []domain.ParkingSpot {
	merged := make([]domain.ParkingSpot, 0, len(catalog))
	for _, spot := range catalog {
		var record *domain.ParkingAvailability
		if r, ok := records[spot.ID]; ok {
			record = &r
		}
		merged = append(merged, merge(spot, record))
	}
	return merged
}

// nearest фильтрует по радиусу и сортирует по расстоянию
func nearest(spots []domain.ParkingSpot, lat, lon, radiusKm float64) []NearbySpot {
	result := make([]NearbySpot, 0)
	for _, s := range spots {
		d := domain.HaversineKm(lat, lon, s.Latitude, s.Longitude)
		if d <= radiusKm {
			result = append(result, NearbySpot{Spot: s, DistanceKm: d})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].DistanceKm < result[j].DistanceKm
	})

	return result
}

func clamp(v, total int) int {
	if v < 0 {
		return 0
	}
	if v > total {
		return total
	}
	return v
}
