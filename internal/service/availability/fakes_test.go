package availability

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

type fakeMetrics struct {
	mu            sync.Mutex
	tx            map[string]int
	subscriptions map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{tx: map[string]int{}, subscriptions: map[string]int{}}
}

func (m *fakeMetrics) IncAvailabilityTx(op, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tx[op+"/"+result]++
}

func (m *fakeMetrics) AddSubscriptions(kind string, delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscriptions[kind] += delta
}

func (m *fakeMetrics) txCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tx[key]
}

func (m *fakeMetrics) activeSubscriptions(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscriptions[kind]
}

type testEnv struct {
	store   *memstore.AvailabilityStore
	feed    *memstore.Feed
	metrics *fakeMetrics
	service *Service
	now     time.Time
}

func newTestEnv() *testEnv {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	env := &testEnv{
		store:   memstore.NewAvailabilityStore(),
		feed:    memstore.NewFeed(),
		metrics: newFakeMetrics(),
		now:     now,
	}
	env.service = NewService(env.store, memstore.NewTxManager(env.store), env.feed, env.metrics, memstore.NewClock(now), memstore.NopLogger{})
	return env
}

func testSpot(id string, fourWheeler int) domain.ParkingSpot {
	return domain.ParkingSpot{
		ID:                    id,
		TotalSpotsTwoWheeler:  10,
		TotalSpotsFourWheeler: fourWheeler,
		TotalSpotsHeavy:       2,
		Floors: []domain.Floor{
			{FloorNumber: 1, TotalSpots: 6},
			{FloorNumber: 2, TotalSpots: 4},
		},
	}
}
