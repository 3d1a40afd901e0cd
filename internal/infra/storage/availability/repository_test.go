package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

func TestBuildGetQuery(t *testing.T) {
	query, args, err := buildGetQuery("spot-1", false)
	require.NoError(t, err)
	assert.Contains(t, query, "FROM parking_availability WHERE spot_id = $1")
	assert.NotContains(t, query, "FOR UPDATE")
	assert.Equal(t, []interface{}{"spot-1"}, args)

	query, _, err = buildGetQuery("spot-1", true)
	require.NoError(t, err)
	assert.Contains(t, query, "FOR UPDATE")
}

func TestBuildUpdateQuery(t *testing.T) {
	now := time.Date(2025, 10, 15, 10, 0, 0, 0, time.UTC)

	query, args, err := buildUpdateQuery("spot-1", domain.AvailabilityUpdate{
		VehicleType: domain.VehicleFourWheeler,
		Count:       36,
		LastUpdated: now,
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE parking_availability SET available_spots_four_wheeler = $1, last_updated = $2 WHERE spot_id = $3", query)
	assert.Equal(t, []interface{}{36, now, "spot-1"}, args)

	query, args, err = buildUpdateQuery("spot-1", domain.AvailabilityUpdate{
		VehicleType:       domain.VehicleTwoWheeler,
		Count:             3,
		FloorAvailability: map[string]int{"1": 9},
		LastUpdated:       now,
	})
	require.NoError(t, err)
	assert.Contains(t, query, "available_spots_two_wheeler = $1")
	assert.Contains(t, query, "floor_availability = $3")
	assert.Equal(t, `{"1":9}`, args[2])

	_, _, err = buildUpdateQuery("spot-1", domain.AvailabilityUpdate{VehicleType: "BUS"})
	assert.ErrorIs(t, err, ErrBuildQuery)
}

func TestBuildUpsertQuery(t *testing.T) {
	now := time.Now()
	records := []domain.ParkingAvailability{
		{SpotID: "a", AvailableFourWheeler: 10, FloorAvailability: map[string]int{"1": 10}, LastUpdated: now},
		{SpotID: "b", AvailableHeavy: 2, LastUpdated: now},
	}

	query, args, err := buildUpsertQuery(records)
	require.NoError(t, err)
	assert.Contains(t, query, "INSERT INTO parking_availability")
	assert.Contains(t, query, "ON CONFLICT (spot_id) DO UPDATE SET")
	assert.Len(t, args, 14)
	assert.Equal(t, "a", args[0])
	assert.Equal(t, `{"1":10}`, args[4])
	assert.Equal(t, "b", args[7])
	assert.Equal(t, `{}`, args[11])
}

func TestDecodeCounts(t *testing.T) {
	m, err := decodeCounts(nil)
	require.NoError(t, err)
	assert.Empty(t, m)

	m, err = decodeCounts([]byte(`{"1":5,"2":0}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 5, "2": 0}, m)

	_, err = decodeCounts([]byte(`not json`))
	assert.Error(t, err)
}
