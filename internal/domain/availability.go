package domain

import (
	"strconv"
	"time"
)

// ParkingAvailability authoritative live counters of one parking spot
// Invariant: 0 <= Available* <= corresponding catalog total
type ParkingAvailability struct {
	SpotID               string
	AvailableTwoWheeler  int
	AvailableFourWheeler int
	AvailableHeavy       int
	FloorAvailability    map[string]int // floor number -> remaining spots
	FloorCapacity        map[string]int // floor number -> total spots at initialization
	LastUpdated          time.Time
}

// FloorKey key of a floor in FloorAvailability
func FloorKey(floorNumber int) string {
	return strconv.Itoa(floorNumber)
}

// NewFullAvailability builds a record with every counter at full capacity
func NewFullAvailability(spot ParkingSpot, now time.Time) ParkingAvailability {
	floors := make(map[string]int, len(spot.Floors))
	capacity := make(map[string]int, len(spot.Floors))
	for _, f := range spot.Floors {
		floors[FloorKey(f.FloorNumber)] = f.TotalSpots
		capacity[FloorKey(f.FloorNumber)] = f.TotalSpots
	}

	return ParkingAvailability{
		SpotID:               spot.ID,
		AvailableTwoWheeler:  spot.TotalSpotsTwoWheeler,
		AvailableFourWheeler: spot.TotalSpotsFourWheeler,
		AvailableHeavy:       spot.TotalSpotsHeavy,
		FloorAvailability:    floors,
		FloorCapacity:        capacity,
		LastUpdated:          now,
	}
}

// AvailableFor returns the counter of a vehicle class
func (a *ParkingAvailability) AvailableFor(vt VehicleType) int {
	switch vt {
	case VehicleTwoWheeler:
		return a.AvailableTwoWheeler
	case VehicleHeavy:
		return a.AvailableHeavy
	default:
		return a.AvailableFourWheeler
	}
}

// Clone deep copy (maps included)
func (a *ParkingAvailability) Clone() *ParkingAvailability {
	if a == nil {
		return nil
	}
	c := *a
	c.FloorAvailability = copyCounts(a.FloorAvailability)
	c.FloorCapacity = copyCounts(a.FloorCapacity)
	return &c
}

// AvailabilityUpdate typed partial update: the only fields a counter transaction may write
type AvailabilityUpdate struct {
	VehicleType       VehicleType
	Count             int
	FloorAvailability map[string]int // nil - floor counters unchanged
	LastUpdated       time.Time
}

// Apply applies the update to a record in place
func (u AvailabilityUpdate) Apply(a *ParkingAvailability) {
	switch u.VehicleType {
	case VehicleTwoWheeler:
		a.AvailableTwoWheeler = u.Count
	case VehicleHeavy:
		a.AvailableHeavy = u.Count
	default:
		a.AvailableFourWheeler = u.Count
	}
	if u.FloorAvailability != nil {
		a.FloorAvailability = copyCounts(u.FloorAvailability)
	}
	a.LastUpdated = u.LastUpdated
}

func copyCounts(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
