package domain

import (
	"fmt"
	"time"
)

// ParkingSlot a single synthesized cell of a floor grid
// Spot identifiers are derived from floor number and row/column, there is no physical registry
type ParkingSlot struct {
	ID          string
	SpotNumber  string
	FloorNumber int
	IsAvailable bool
	IsBooked    bool
	BookedUntil *time.Time
	VehicleType VehicleType
	Row         int
	Column      int // 0 = left, 1 = right
}

// IsAvailableForBooking true if the cell is free for [checkIn, checkOut)
func (s *ParkingSlot) IsAvailableForBooking(checkIn, checkOut time.Time) bool {
	if !s.IsAvailable {
		return false
	}
	if !s.IsBooked || s.BookedUntil == nil {
		return true
	}
	return !checkIn.Before(*s.BookedUntil)
}

// FloorData floor with its synthesized grid
type FloorData struct {
	FloorNumber    int
	Name           string
	Spots          []ParkingSlot
	TotalSpots     int
	AvailableSpots int
}

// IsFull returns true if the floor has no available spots
func (f *FloorData) IsFull() bool {
	return f.AvailableSpots <= 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (f *FloorData) OccupancyRate() float64 {
	if f.TotalSpots == 0 {
		return 0
	}
	occupied := f.TotalSpots - f.AvailableSpots
	return float64(occupied) / float64(f.TotalSpots) * 100
}

// FloorLetter row letter for spot numbers: 1 -> A, 2 -> B ...; ground G, basements B
func FloorLetter(floorNumber int) string {
	switch {
	case floorNumber == 0:
		return "G"
	case floorNumber < 0:
		return fmt.Sprintf("B%d", -floorNumber)
	default:
		return string(rune('A' + (floorNumber-1)%26))
	}
}

// SpotNumber deterministic spot identifier, e.g. A01, B12
func SpotNumber(floorNumber, index int) string {
	return fmt.Sprintf("%s%02d", FloorLetter(floorNumber), index+1)
}

// SlotID identifier of a cell, e.g. 1_A01
func SlotID(floorNumber int, spotNumber string) string {
	return fmt.Sprintf("%d_%s", floorNumber, spotNumber)
}

// FloorName display name, e.g. 1st Floor, Ground Floor
func FloorName(floorNumber int) string {
	switch {
	case floorNumber == 0:
		return "Ground Floor"
	case floorNumber < 0:
		return fmt.Sprintf("Basement %d", -floorNumber)
	default:
		return fmt.Sprintf("%d%s Floor", floorNumber, ordinalSuffix(floorNumber))
	}
}

func ordinalSuffix(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return "th"
	case n%10 == 1:
		return "st"
	case n%10 == 2:
		return "nd"
	case n%10 == 3:
		return "rd"
	default:
		return "th"
	}
}
