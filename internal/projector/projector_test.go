package projector

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/changefeed"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

const (
	originLat = 12.9716
	originLon = 77.5946
	kmPerDeg  = domain.EarthRadiusKm * math.Pi / 180
)

type fakeCatalogClient struct {
	spots []domain.ParkingSpot
	err   error
}

func (c *fakeCatalogClient) GetParkingSpots(context.Context) ([]domain.ParkingSpot, error) {
	return c.spots, c.err
}

func catalogSpot(id string, fourWheeler int, distanceKm float64) domain.ParkingSpot {
	return domain.ParkingSpot{
		ID:                    id,
		Name:                  "Parking " + id,
		Latitude:              originLat + distanceKm/kmPerDeg,
		Longitude:             originLon,
		TotalSpotsTwoWheeler:  20,
		TotalSpotsFourWheeler: fourWheeler,
		Floors: []domain.Floor{
			{FloorNumber: 1, TotalSpots: fourWheeler / 2},
			{FloorNumber: 2, TotalSpots: fourWheeler - fourWheeler/2},
		},
	}
}

type harness struct {
	projector *Projector
	store     *memstore.AvailabilityStore
	service   *availability.Service
	feed      *memstore.Feed
}

func newHarness(spots ...domain.ParkingSpot) *harness {
	store := memstore.NewAvailabilityStore()
	feed := memstore.NewFeed()
	clock := memstore.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := availability.NewService(store, memstore.NewTxManager(store), feed, memstore.NopMetrics{}, clock, memstore.NopLogger{})

	return &harness{
		projector: New(&fakeCatalogClient{spots: spots}, svc, memstore.NopLogger{}),
		store:     store,
		service:   svc,
		feed:      feed,
	}
}

func TestProjector_MergeDefaultsToFullCapacity(t *testing.T) {
	h := newHarness(catalogSpot("ps_001", 100, 1))
	h.projector.catalog = []domain.ParkingSpot{catalogSpot("ps_001", 100, 1)}
	h.projector.apply(map[string]domain.ParkingAvailability{})

	spot, ok := h.projector.Spot("ps_001")
	require.True(t, ok)
	assert.Equal(t, 100, spot.AvailableSpotsFourWheeler)
	assert.Equal(t, 20, spot.AvailableSpotsTwoWheeler)
	assert.Equal(t, 50, spot.Floors[0].AvailableSpots)

	h.projector.apply(map[string]domain.ParkingAvailability{
		"ps_001": {
			SpotID:               "ps_001",
			AvailableTwoWheeler:  20,
			AvailableFourWheeler: 37,
			FloorAvailability:    map[string]int{"1": 12},
		},
	})

	spot, ok = h.projector.Spot("ps_001")
	require.True(t, ok)
	assert.Equal(t, 37, spot.AvailableSpotsFourWheeler)
	assert.Equal(t, 12, spot.Floors[0].AvailableSpots)
	assert.Equal(t, 50, spot.Floors[1].AvailableSpots, "floor without counter defaults to full")
	assert.Equal(t, 0, spot.AvailableSpotsHeavy)
}

func TestProjector_LoadCatalog(t *testing.T) {
	h := newHarness(catalogSpot("ps_001", 100, 1), catalogSpot("ps_002", 40, 2))
	ctx := context.Background()

	// существующая запись не сбрасывается
	require.NoError(t, h.store.UpsertBatch(ctx, []domain.ParkingAvailability{{SpotID: "ps_002", AvailableFourWheeler: 3}}))

	require.NoError(t, h.projector.LoadCatalog(ctx))

	assert.Equal(t, 100, h.store.Record("ps_001").AvailableFourWheeler)
	assert.Equal(t, 3, h.store.Record("ps_002").AvailableFourWheeler)
	assert.Len(t, h.projector.Snapshot(), 2)
}

func TestProjector_LoadCatalog_Unavailable(t *testing.T) {
	p := New(&fakeCatalogClient{err: errors.New("dns failure")}, nil, memstore.NopLogger{})

	err := p.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, ErrCatalogUnavailable)
	assert.Empty(t, p.Snapshot())
}

func TestProjector_Run(t *testing.T) {
	h := newHarness(catalogSpot("ps_001", 100, 1))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, h.projector.LoadCatalog(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.projector.Run(ctx)
	}()

	for i := 0; i < 63; i++ {
		require.NoError(t, h.service.Decrease(ctx, "ps_001", domain.VehicleFourWheeler, nil))
	}
	h.feed.Emit(changefeed.Event{SpotID: "ps_001"})

	assert.Eventually(t, func() bool {
		spot, ok := h.projector.Spot("ps_001")
		return ok && spot.AvailableSpotsFourWheeler == 37
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestProjector_NearLocation(t *testing.T) {
	h := newHarness()
	h.projector.catalog = []domain.ParkingSpot{
		catalogSpot("far", 10, 5.5),
		catalogSpot("mid", 10, 2),
		catalogSpot("near", 10, 0.5),
	}
	h.projector.apply(nil)

	result := h.projector.NearLocation(originLat, originLon, 5)
	require.Len(t, result, 2)
	assert.Equal(t, "near", result[0].Spot.ID)
	assert.Equal(t, "mid", result[1].Spot.ID)
	assert.InDelta(t, 0.5, result[0].DistanceKm, 0.01)
	assert.InDelta(t, 2, result[1].DistanceKm, 0.01)

	assert.Len(t, h.projector.NearLocation(originLat, originLon, 10), 3)
}

func TestProjector_Subscribe(t *testing.T) {
	h := newHarness()
	h.projector.catalog = []domain.ParkingSpot{catalogSpot("ps_001", 100, 1)}
	h.projector.apply(nil)

	ch, cancel := h.projector.Subscribe()

	first := <-ch
	require.Len(t, first, 1)
	assert.Equal(t, 100, first[0].AvailableSpotsFourWheeler)

	// непрочитанное значение вытесняется последним
	h.projector.apply(map[string]domain.ParkingAvailability{"ps_001": {AvailableFourWheeler: 90}})
	h.projector.apply(map[string]domain.ParkingAvailability{"ps_001": {AvailableFourWheeler: 80}})

	latest := <-ch
	assert.Equal(t, 80, latest[0].AvailableSpotsFourWheeler)

	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	// публикация после отмены не паникует
	h.projector.apply(nil)
	cancel()
}
