package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSpot() ParkingSpot {
	return ParkingSpot{
		ID:                    "spot-1",
		TotalSpotsTwoWheeler:  20,
		TotalSpotsFourWheeler: 100,
		TotalSpotsHeavy:       5,
		Floors: []Floor{
			{FloorNumber: 1, Name: "1st Floor", TotalSpots: 60, PriceMultiplier: 1},
			{FloorNumber: 2, Name: "2nd Floor", TotalSpots: 40, PriceMultiplier: 1.2},
		},
	}
}

func TestNewFullAvailability(t *testing.T) {
	now := time.Now()
	a := NewFullAvailability(sampleSpot(), now)

	assert.Equal(t, "spot-1", a.SpotID)
	assert.Equal(t, 20, a.AvailableTwoWheeler)
	assert.Equal(t, 100, a.AvailableFourWheeler)
	assert.Equal(t, 5, a.AvailableHeavy)
	assert.Equal(t, map[string]int{"1": 60, "2": 40}, a.FloorAvailability)
	assert.Equal(t, a.FloorAvailability, a.FloorCapacity)
	assert.Equal(t, now, a.LastUpdated)
}

func TestAvailabilityUpdate_Apply(t *testing.T) {
	a := NewFullAvailability(sampleSpot(), time.Time{})
	now := time.Now()

	AvailabilityUpdate{VehicleType: VehicleHeavy, Count: 4, LastUpdated: now}.Apply(&a)
	assert.Equal(t, 4, a.AvailableHeavy)
	assert.Equal(t, 60, a.FloorAvailability["1"])

	AvailabilityUpdate{
		VehicleType:       VehicleFourWheeler,
		Count:             99,
		FloorAvailability: map[string]int{"1": 59, "2": 40},
		LastUpdated:       now,
	}.Apply(&a)
	assert.Equal(t, 99, a.AvailableFourWheeler)
	assert.Equal(t, 59, a.FloorAvailability["1"])
}

func TestParkingAvailability_CloneIsDeep(t *testing.T) {
	a := NewFullAvailability(sampleSpot(), time.Now())
	c := a.Clone()
	c.FloorAvailability["1"] = 0

	assert.Equal(t, 60, a.FloorAvailability["1"])
	assert.Nil(t, (*ParkingAvailability)(nil).Clone())
}

func TestParkingSpot_AvailabilityStatus(t *testing.T) {
	spot := sampleSpot()

	full := spot
	assert.Equal(t, AvailabilityFull, full.AvailabilityStatus())

	limited := spot
	limited.AvailableSpotsFourWheeler = 10
	assert.Equal(t, AvailabilityLimited, limited.AvailabilityStatus())

	available := spot.WithFullAvailability()
	assert.Equal(t, AvailabilityAvailable, available.AvailabilityStatus())
	assert.Equal(t, 125, available.TotalAvailableSpots())
	assert.Equal(t, 40, available.Floors[1].AvailableSpots)
	assert.Equal(t, 0, spot.Floors[1].AvailableSpots, "original floors must not be mutated")
}

func TestParkingSpot_Lookups(t *testing.T) {
	spot := sampleSpot()
	spot.PricePerHourHeavy = 200

	f, ok := spot.FloorByNumber(2)
	require.True(t, ok)
	assert.Equal(t, 1.2, f.PriceMultiplier)

	_, ok = spot.FloorByNumber(7)
	assert.False(t, ok)

	assert.Equal(t, 200.0, spot.HourlyPriceFor(VehicleHeavy))
	assert.Equal(t, 100, spot.Capacities().For(VehicleFourWheeler))
}

func TestFloorNaming(t *testing.T) {
	assert.Equal(t, "A01", SpotNumber(1, 0))
	assert.Equal(t, "C12", SpotNumber(3, 11))
	assert.Equal(t, "G03", SpotNumber(0, 2))
	assert.Equal(t, "1_A01", SlotID(1, "A01"))
	assert.Equal(t, "1st Floor", FloorName(1))
	assert.Equal(t, "2nd Floor", FloorName(2))
	assert.Equal(t, "11th Floor", FloorName(11))
	assert.Equal(t, "Ground Floor", FloorName(0))
	assert.Equal(t, "Basement 1", FloorName(-1))
}

func TestHaversineKm(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(28.6139, 77.2090, 28.6139, 77.2090), 1e-9)
	// Delhi -> Mumbai ~1150 km
	assert.InDelta(t, 1150, HaversineKm(28.6139, 77.2090, 19.0760, 72.8777), 15)
}
