package availability

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/ptr"
)

func TestService_Decrease(t *testing.T) {
	ctx := context.Background()

	t.Run("last spot then no capacity", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 1)))

		require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(1)))

		err := env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(1))
		assert.ErrorIs(t, err, ErrNoCapacity)

		rec := env.store.Record("s1")
		assert.Equal(t, 0, rec.AvailableFourWheeler)
		assert.Equal(t, 5, rec.FloorAvailability["1"])
		assert.Equal(t, 10, rec.AvailableTwoWheeler)
		assert.Equal(t, env.now, rec.LastUpdated)
	})

	t.Run("missing record", func(t *testing.T) {
		env := newTestEnv()
		err := env.service.Decrease(ctx, "nope", domain.VehicleFourWheeler, nil)
		assert.ErrorIs(t, err, ErrNoAvailability)
		assert.Equal(t, 1, env.metrics.txCount("decrease/no_availability"))
	})

	t.Run("floor counter is best effort", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 3)))

		// Этажа 7 нет в записи
		require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(7)))

		rec := env.store.Record("s1")
		rec.FloorAvailability["2"] = 0
		env.store.Put(rec)

		// Этаж 2 уже пуст, класс всё равно уменьшается
		require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(2)))

		rec = env.store.Record("s1")
		assert.Equal(t, 1, rec.AvailableFourWheeler)
		assert.Equal(t, 0, rec.FloorAvailability["2"])
		assert.Equal(t, 6, rec.FloorAvailability["1"])
		assert.NotContains(t, rec.FloorAvailability, "7")
	})

	t.Run("empty spot id", func(t *testing.T) {
		env := newTestEnv()
		assert.ErrorIs(t, env.service.Decrease(ctx, "", domain.VehicleHeavy, nil), ErrInvalidInput)
	})
}

// Транзакции memstore выполняются под общим мьютексом: тест проверяет логику сервиса,
// а не блокировки Postgres. Путь FOR UPDATE/SERIALIZABLE покрыт тестом с тегом integration.
func TestService_Decrease_Concurrent(t *testing.T) {
	const (
		capacity = 5
		workers  = 20
	)

	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.service.Initialize(ctx, testSpot("s1", capacity)))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, nil)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, ErrNoCapacity):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, workers-capacity, rejected)
	assert.Equal(t, 0, env.store.Record("s1").AvailableFourWheeler)
}

func TestService_Increase(t *testing.T) {
	ctx := context.Background()
	caps := domain.Capacities{TwoWheeler: 10, FourWheeler: 3, Heavy: 2}

	t.Run("clamped to capacity", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 3)))

		// Двойное освобождение не поднимает счётчик выше ёмкости
		require.NoError(t, env.service.Increase(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(1), caps))
		require.NoError(t, env.service.Increase(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(1), caps))

		rec := env.store.Record("s1")
		assert.Equal(t, 3, rec.AvailableFourWheeler)
		assert.Equal(t, 6, rec.FloorAvailability["1"])
	})

	t.Run("releases decrement", func(t *testing.T) {
		env := newTestEnv()
		require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 3)))
		require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(2)))
		require.NoError(t, env.service.Increase(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(2), caps))

		rec := env.store.Record("s1")
		assert.Equal(t, 3, rec.AvailableFourWheeler)
		assert.Equal(t, 4, rec.FloorAvailability["2"])
	})

	t.Run("missing record", func(t *testing.T) {
		env := newTestEnv()
		err := env.service.Increase(ctx, "nope", domain.VehicleFourWheeler, nil, caps)
		assert.ErrorIs(t, err, ErrNoAvailability)
	})
}

func TestService_Initialize_Overwrites(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	spot := testSpot("s1", 4)

	require.NoError(t, env.service.Initialize(ctx, spot))
	require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, ptr.Ptr(1)))
	require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleHeavy, nil))

	// Повторная инициализация сбрасывает все счётчики к полной ёмкости
	require.NoError(t, env.service.Initialize(ctx, spot))

	rec := env.store.Record("s1")
	assert.Equal(t, 4, rec.AvailableFourWheeler)
	assert.Equal(t, 2, rec.AvailableHeavy)
	assert.Equal(t, map[string]int{"1": 6, "2": 4}, rec.FloorAvailability)
	assert.Equal(t, map[string]int{"1": 6, "2": 4}, rec.FloorCapacity)
}

func TestService_InitializeMissing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 4)))
	require.NoError(t, env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, nil))

	n, err := env.service.InitializeMissing(ctx, []domain.ParkingSpot{testSpot("s1", 4), testSpot("s2", 8)})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Существующая запись не тронута
	assert.Equal(t, 3, env.store.Record("s1").AvailableFourWheeler)
	assert.Equal(t, 8, env.store.Record("s2").AvailableFourWheeler)

	n, err = env.service.InitializeMissing(ctx, []domain.ParkingSpot{testSpot("s1", 4)})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestService_ErrorClassification(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		repoErr error
		want    error
	}{
		{name: "serialization failure", repoErr: &pq.Error{Code: "40001"}, want: ErrTransientIO},
		{name: "deadlock", repoErr: &pq.Error{Code: "40P01"}, want: ErrTransientIO},
		{name: "connection failure", repoErr: &pq.Error{Code: "08006"}, want: ErrTransientIO},
		{name: "deadline", repoErr: context.DeadlineExceeded, want: ErrTransientIO},
		{name: "check violation", repoErr: &pq.Error{Code: "23514"}, want: ErrPersistenceFailure},
		{name: "other", repoErr: errors.New("disk on fire"), want: ErrPersistenceFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			require.NoError(t, env.service.Initialize(ctx, testSpot("s1", 2)))
			env.store.FailWrites(tt.repoErr)

			err := env.service.Decrease(ctx, "s1", domain.VehicleFourWheeler, nil)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 2, env.store.Record("s1").AvailableFourWheeler)
		})
	}
}

func TestService_Get(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	require.NoError(t, env.service.InitializeAll(ctx, []domain.ParkingSpot{testSpot("s1", 4), testSpot("s2", 8)}))

	a, err := env.service.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, 8, a.AvailableFourWheeler)

	_, err = env.service.Get(ctx, "s3")
	assert.ErrorIs(t, err, ErrNoAvailability)

	all, err := env.service.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 4, all["s1"].AvailableFourWheeler)
}
