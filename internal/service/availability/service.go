package availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	opInitialize = "initialize"
	opDecrease   = "decrease"
	opIncrease   = "increase"
)

// Service доступ к счётчикам доступности парковок
// Все изменения счётчиков выполняются в SERIALIZABLE транзакции с блокировкой строки,
// одна попытка на вызов
type Service struct {
	repo         Repository
	txManager    TransactionManager
	feed         ChangeFeed
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис доступности
func NewService(
	repo Repository,
	txManager TransactionManager,
	feed ChangeFeed,
	metrics Metrics,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		repo:         repo,
		txManager:    txManager,
		feed:         feed,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Initialize записывает запись полной ёмкости для парковки
// Существующая запись перезаписывается (сброс к полной ёмкости)
func (s *Service) Initialize(ctx context.Context, spot domain.ParkingSpot) error {
	return s.InitializeAll(ctx, []domain.ParkingSpot{spot})
}

// InitializeAll записывает записи полной ёмкости одним батчем
func (s *Service) InitializeAll(ctx context.Context, spots []domain.ParkingSpot) error {
	if len(spots) == 0 {
		return nil
	}

	now := s.timeProvider.Now()
	records := make([]domain.ParkingAvailability, 0, len(spots))
	for _, spot := range spots {
		if spot.ID == "" {
			return fmt.Errorf("%w: spot without id", ErrInvalidInput)
		}
		records = append(records, domain.NewFullAvailability(spot, now))
	}

	err := classify(s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return s.repo.UpsertBatch(ctx, records)
	}))
	s.metrics.IncAvailabilityTx(opInitialize, resultLabel(err))
	if err != nil {
		s.logger.Error("InitializeAll: failed to initialize %d spots: %v", len(records), err)
		return err
	}

	s.logger.Info("InitializeAll: initialized availability for %d spots", len(records))
	return nil
}

// InitializeMissing инициализирует только парковки без записи доступности
// Возвращает количество инициализированных записей
func (s *Service) InitializeMissing(ctx context.Context, spots []domain.ParkingSpot) (int, error) {
	ids, err := s.repo.ListSpotIDs(ctx)
	if err != nil {
		err = classify(err)
		s.logger.Error("InitializeMissing: failed to list existing records: %v", err)
		return 0, err
	}

	existing := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		existing[id] = struct{}{}
	}

	missing := make([]domain.ParkingSpot, 0)
	for _, spot := range spots {
		if _, ok := existing[spot.ID]; !ok {
			missing = append(missing, spot)
		}
	}

	if len(missing) == 0 {
		return 0, nil
	}

	if err := s.InitializeAll(ctx, missing); err != nil {
		return 0, err
	}
	return len(missing), nil
}

// Decrease занимает одно место класса vehicleType (и этажа, если указан) в отдельной транзакции
func (s *Service) Decrease(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int) error {
	err := classify(s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return s.decrease(ctx, spotID, vehicleType, floorNumber)
	}))
	s.metrics.IncAvailabilityTx(opDecrease, resultLabel(err))
	return err
}

// DecreaseInTx то же, что Decrease, но в транзакции вызывающей стороны (из контекста)
// Ошибка возвращается без отката: откатывает владелец транзакции
func (s *Service) DecreaseInTx(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int) error {
	err := classify(s.decrease(ctx, spotID, vehicleType, floorNumber))
	s.metrics.IncAvailabilityTx(opDecrease, resultLabel(err))
	return err
}

// Increase освобождает одно место, не превышая общую ёмкость класса
func (s *Service) Increase(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int, caps domain.Capacities) error {
	err := classify(s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		return s.increase(ctx, spotID, vehicleType, floorNumber, caps)
	}))
	s.metrics.IncAvailabilityTx(opIncrease, resultLabel(err))
	return err
}

// IncreaseInTx то же, что Increase, но в транзакции вызывающей стороны
func (s *Service) IncreaseInTx(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int, caps domain.Capacities) error {
	err := classify(s.increase(ctx, spotID, vehicleType, floorNumber, caps))
	s.metrics.IncAvailabilityTx(opIncrease, resultLabel(err))
	return err
}

// Get возвращает текущую запись доступности парковки
func (s *Service) Get(ctx context.Context, spotID string) (*domain.ParkingAvailability, error) {
	a, err := s.repo.GetBySpotID(ctx, spotID)
	if err != nil {
		return nil, classify(err)
	}
	return a, nil
}

// GetAll возвращает записи доступности всех парковок по spot id
func (s *Service) GetAll(ctx context.Context) (map[string]domain.ParkingAvailability, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, classify(err)
	}

	result := make(map[string]domain.ParkingAvailability, len(records))
	for _, a := range records {
		result[a.SpotID] = *a
	}
	return result, nil
}

func (s *Service) decrease(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int) error {
	if spotID == "" {
		return fmt.Errorf("%w: empty spot id", ErrInvalidInput)
	}

	current, err := s.repo.GetBySpotID(ctx, spotID)
	if err != nil {
		return err
	}

	count := current.AvailableFor(vehicleType)
	if count <= 0 {
		return fmt.Errorf("%w: spot_id=%s, vehicle_type=%s", ErrNoCapacity, spotID, vehicleType)
	}

	upd := domain.AvailabilityUpdate{
		VehicleType: vehicleType,
		Count:       count - 1,
		LastUpdated: s.timeProvider.Now(),
	}

	// Поэтажный счётчик - best-effort: уменьшаем, только если он есть и больше нуля
	if floorNumber != nil {
		key := domain.FloorKey(*floorNumber)
		if floorCount, ok := current.FloorAvailability[key]; ok && floorCount > 0 {
			floors := current.Clone().FloorAvailability
			floors[key] = floorCount - 1
			upd.FloorAvailability = floors
		}
	}

	return s.repo.ApplyUpdate(ctx, spotID, upd)
}

func (s *Service) increase(ctx context.Context, spotID string, vehicleType domain.VehicleType, floorNumber *int, caps domain.Capacities) error {
	if spotID == "" {
		return fmt.Errorf("%w: empty spot id", ErrInvalidInput)
	}

	current, err := s.repo.GetBySpotID(ctx, spotID)
	if err != nil {
		return err
	}

	upd := domain.AvailabilityUpdate{
		VehicleType: vehicleType,
		Count:       min(current.AvailableFor(vehicleType)+1, caps.For(vehicleType)),
		LastUpdated: s.timeProvider.Now(),
	}

	if floorNumber != nil {
		key := domain.FloorKey(*floorNumber)
		if floorCount, ok := current.FloorAvailability[key]; ok {
			next := floorCount + 1
			if total, known := current.FloorCapacity[key]; known {
				next = min(next, total)
			}
			if next != floorCount {
				floors := current.Clone().FloorAvailability
				floors[key] = next
				upd.FloorAvailability = floors
			}
		}
	}

	return s.repo.ApplyUpdate(ctx, spotID, upd)
}
