package get_floors_with_spots

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

// buildFloorGrid строит сетку этажа: 2 колонки, ceil(total/2) рядов
// booked - номер места -> время окончания активной брони
func buildFloorGrid(
	floor domain.Floor,
	available int,
	booked map[string]time.Time,
	vehicleType domain.VehicleType,
) domain.FloorData {
	total := floor.TotalSpots
	if total < 0 {
		total = 0
	}
	available = clamp(available, 0, total)

	name := floor.Name
	if name == "" {
		name = domain.FloorName(floor.FloorNumber)
	}

	spots := make([]domain.ParkingSlot, 0, total)
	bookedCount := 0
	for i := 0; i < total; i++ {
		number := domain.SpotNumber(floor.FloorNumber, i)
		slot := domain.ParkingSlot{
			ID:          domain.SlotID(floor.FloorNumber, number),
			SpotNumber:  number,
			FloorNumber: floor.FloorNumber,
			IsAvailable: true,
			VehicleType: vehicleType,
			Row:         i / domain.SpotsPerRow,
			Column:      i % domain.SpotsPerRow,
		}
		if until, ok := booked[number]; ok {
			slot.IsAvailable = false
			slot.IsBooked = true
			slot.BookedUntil = ptr.Ptr(until)
			bookedCount++
		}
		spots = append(spots, slot)
	}

	// Счетчик важнее явных броней: недостающие занятые места добираем первыми свободными
	missing := (total - available) - bookedCount
	for i := range spots {
		if missing <= 0 {
			break
		}
		if spots[i].IsBooked {
			continue
		}
		spots[i].IsAvailable = false
		spots[i].IsBooked = true
		missing--
	}

	free := 0
	for _, s := range spots {
		if s.IsAvailable {
			free++
		}
	}

	return domain.FloorData{
		FloorNumber:    floor.FloorNumber,
		Name:           name,
		Spots:          spots,
		TotalSpots:     total,
		AvailableSpots: free,
	}
}

// bookedSpots активные брони этажа; при нескольких бронях места берется самое позднее окончание
func bookedSpots(bookings []*domain.Booking, floorNumber int, now time.Time) map[string]time.Time {
	result := make(map[string]time.Time)
	for _, b := range bookings {
		if b.FloorNumber == nil || *b.FloorNumber != floorNumber || !b.HoldsCapacity() {
			continue
		}
		if !b.ExitTime.After(now) {
			continue
		}
		if cur, ok := result[b.SpotNumber]; !ok || b.ExitTime.After(cur) {
			result[b.SpotNumber] = b.ExitTime
		}
	}
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// SyntheticFloorGenerator генерирует демонстрационные этажи для парковок без схемы:
// 3 этажа по 6 рядов x 2 колонки, каждое третье место занято
type SyntheticFloorGenerator struct{}

// Generate возвращает сгенерированные этажи
func (SyntheticFloorGenerator) Generate(vehicleType domain.VehicleType) []domain.FloorData {
	perFloor := domain.SyntheticRowsPerFloor * domain.SpotsPerRow

	floors := make([]domain.FloorData, 0, domain.SyntheticFloorCount)
	for n := 1; n <= domain.SyntheticFloorCount; n++ {
		spots := make([]domain.ParkingSlot, 0, perFloor)
		free := 0
		for i := 0; i < perFloor; i++ {
			number := domain.SpotNumber(n, i)
			occupied := i%domain.SyntheticOccupiedEvery == 0
			if !occupied {
				free++
			}
			spots = append(spots, domain.ParkingSlot{
				ID:          domain.SlotID(n, number),
				SpotNumber:  number,
				FloorNumber: n,
				IsAvailable: !occupied,
				IsBooked:    occupied,
				VehicleType: vehicleType,
				Row:         i / domain.SpotsPerRow,
				Column:      i % domain.SpotsPerRow,
			})
		}
		floors = append(floors, domain.FloorData{
			FloorNumber:    n,
			Name:           domain.FloorName(n),
			Spots:          spots,
			TotalSpots:     perFloor,
			AvailableSpots: free,
		})
	}

	return floors
}
