package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const parkingSpotsJSON = `{
  "parkingSpots": [
    {
      "id": "ps_001",
      "name": "Phoenix Mall Parking",
      "address": "Viman Nagar, Pune",
      "latitude": 18.5626,
      "longitude": 73.9167,
      "pricePerHourTwoWheeler": 20,
      "pricePerHourFourWheeler": 50,
      "pricePerHourHeavy": 100,
      "totalSpotsTwoWheeler": 40,
      "totalSpotsFourWheeler": 100,
      "totalSpotsHeavy": 5,
      "floors": [
        {"floorNumber": 1, "name": "1st Floor", "totalSpots": 60, "priceMultiplier": 1.0},
        {"floorNumber": 2, "name": "2nd Floor", "totalSpots": 40}
      ],
      "amenities": ["cctv", "ev_charging"],
      "rating": 4.5,
      "reviewCount": 120,
      "operatingHours": {"is24Hours": true, "openTime": "00:00", "closeTime": "23:59", "closedDays": []},
      "isActive": true
    },
    {"name": "broken entry"}
  ],
  "amenitiesMaster": [{"id": "cctv", "name": "CCTV", "icon": "ic_cctv"}]
}`

const vehiclesJSON = `{
  "vehicleTypes": [{"type": "FOUR_WHEELER", "displayName": "Car", "icon": "ic_car"}],
  "brands": [{"id": "honda", "name": "Honda", "logoUrl": "", "vehicleTypes": ["TWO_WHEELER", "FOUR_WHEELER"]}],
  "presetVehicles": [
    {"id": "preset_1", "type": "FOUR_WHEELER", "brand": "Honda", "model": "City", "imageUrl": ""},
    {"id": "preset_x", "type": "SPACESHIP", "brand": "Acme", "model": "X", "imageUrl": ""}
  ],
  "colors": [{"name": "White", "hex": "#FFFFFF"}]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/parking-spots.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(parkingSpotsJSON))
	})
	mux.HandleFunc("/vehicles.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(vehiclesJSON))
	})
	mux.HandleFunc("/broken/parking-spots.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"parkingSpots": [`))
	})
	mux.HandleFunc("/failing/parking-spots.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetParkingSpots(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL+"/", time.Second, nopLogger{})

	spots, err := client.GetParkingSpots(context.Background())
	require.NoError(t, err)
	require.Len(t, spots, 1)

	spot := spots[0]
	assert.Equal(t, "ps_001", spot.ID)
	assert.Equal(t, 100, spot.TotalSpotsFourWheeler)
	assert.Equal(t, 100, spot.AvailableSpotsFourWheeler)
	require.Len(t, spot.Floors, 2)
	assert.Equal(t, 60, spot.Floors[0].AvailableSpots)
	assert.Equal(t, 1.0, spot.Floors[1].PriceMultiplier)
	assert.True(t, spot.OperatingHours.Is24Hours)
}

func TestClient_GetParkingSpots_Errors(t *testing.T) {
	srv := newTestServer(t)

	_, err := NewClient(srv.URL+"/broken", time.Second, nopLogger{}).GetParkingSpots(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = NewClient(srv.URL+"/failing", time.Second, nopLogger{}).GetParkingSpots(context.Background())
	assert.ErrorIs(t, err, ErrInvalidResponse)

	_, err = NewClient(srv.URL+"/missing", time.Second, nopLogger{}).GetParkingSpots(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = NewClient("http://127.0.0.1:1", 100*time.Millisecond, nopLogger{}).GetParkingSpots(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestClient_GetVehiclesData(t *testing.T) {
	srv := newTestServer(t)
	client := NewClient(srv.URL, time.Second, nopLogger{})

	data, err := client.GetVehiclesData(context.Background())
	require.NoError(t, err)
	require.Len(t, data.PresetVehicles, 2)

	preset, ok := data.PresetVehicles[0].ToDomain()
	require.True(t, ok)
	assert.Equal(t, domain.VehicleFourWheeler, preset.Type)
	assert.True(t, preset.IsPreset)

	_, ok = data.PresetVehicles[1].ToDomain()
	assert.False(t, ok)
}
