package get_parking_spots

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/projector"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

type fakeProjector struct {
	spots  []domain.ParkingSpot
	radius float64
}

func (p *fakeProjector) Snapshot() []domain.ParkingSpot { return p.spots }

func (p *fakeProjector) Spot(id string) (domain.ParkingSpot, bool) {
	for _, s := range p.spots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.ParkingSpot{}, false
}

func (p *fakeProjector) NearLocation(_, _, radiusKm float64) []projector.NearbySpot {
	p.radius = radiusKm
	return []projector.NearbySpot{{Spot: p.spots[0], DistanceKm: 0.4}}
}

func newRouter(p Projector) *mux.Router {
	h := NewHandler(p, memstore.NopLogger{})
	r := mux.NewRouter()
	r.HandleFunc("/parking-spots", h.List)
	r.HandleFunc("/parking-spots/{parkingId}", h.Get)
	return r
}

func testSpots() []domain.ParkingSpot {
	return []domain.ParkingSpot{{
		ID:                        "ps_001",
		Name:                      "Central",
		TotalSpotsFourWheeler:     100,
		AvailableSpotsFourWheeler: 10,
		Floors:                    []domain.Floor{{FloorNumber: 1, TotalSpots: 100, AvailableSpots: 10}},
	}}
}

func TestHandler_List(t *testing.T) {
	p := &fakeProjector{spots: testSpots()}
	r := newRouter(p)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parking-spots", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ParkingSpotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ParkingSpots, 1)
	assert.Equal(t, 10, resp.ParkingSpots[0].AvailableSpotsFourWheeler)
	assert.Equal(t, string(domain.AvailabilityLimited), resp.ParkingSpots[0].AvailabilityStatus)
	assert.Nil(t, resp.ParkingSpots[0].Distance)
}

func TestHandler_List_NearLocation(t *testing.T) {
	p := &fakeProjector{spots: testSpots()}
	r := newRouter(p)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parking-spots?lat=12.97&lon=77.59", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.DefaultSearchKm, p.radius)

	var resp ParkingSpotListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.ParkingSpots, 1)
	require.NotNil(t, resp.ParkingSpots[0].Distance)
	assert.InDelta(t, 0.4, *resp.ParkingSpots[0].Distance, 1e-9)

	for _, target := range []string{"/parking-spots?lat=12.97", "/parking-spots?lat=abc&lon=1", "/parking-spots?lat=1&lon=1&radiusKm=-3"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestHandler_Get(t *testing.T) {
	r := newRouter(&fakeProjector{spots: testSpots()})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parking-spots/ps_001", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/parking-spots/ps_404", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
