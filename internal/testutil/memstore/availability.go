package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/availability"
)

// AvailabilityStore записи доступности в памяти
// readErr подменяет ответ чтений, writeErr - ответ ApplyUpdate
type AvailabilityStore struct {
	mu       sync.Mutex
	records  map[string]domain.ParkingAvailability
	readErr  error
	writeErr error
}

func NewAvailabilityStore() *AvailabilityStore {
	return &AvailabilityStore{records: map[string]domain.ParkingAvailability{}}
}

func (s *AvailabilityStore) UpsertBatch(_ context.Context, records []domain.ParkingAvailability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range records {
		s.records[a.SpotID] = *a.Clone()
	}
	return nil
}

func (s *AvailabilityStore) GetBySpotID(_ context.Context, spotID string) (*domain.ParkingAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	a, ok := s.records[spotID]
	if !ok {
		return nil, availabilityRepo.ErrAvailabilityNotFound
	}
	return a.Clone(), nil
}

func (s *AvailabilityStore) GetAll(_ context.Context) ([]*domain.ParkingAvailability, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readErr != nil {
		return nil, s.readErr
	}
	result := make([]*domain.ParkingAvailability, 0, len(s.records))
	for _, a := range s.records {
		result = append(result, a.Clone())
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SpotID < result[j].SpotID })
	return result, nil
}

func (s *AvailabilityStore) ListSpotIDs(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *AvailabilityStore) ApplyUpdate(_ context.Context, spotID string, upd domain.AvailabilityUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.writeErr != nil {
		return s.writeErr
	}
	a, ok := s.records[spotID]
	if !ok {
		return availabilityRepo.ErrAvailabilityNotFound
	}
	upd.Apply(&a)
	s.records[spotID] = a
	return nil
}

// Put кладёт запись напрямую, минуя транзакции
func (s *AvailabilityStore) Put(a domain.ParkingAvailability) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[a.SpotID] = *a.Clone()
}

// FailReads заставляет GetBySpotID и GetAll возвращать err (nil снимает ошибку)
func (s *AvailabilityStore) FailReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readErr = err
}

// FailWrites заставляет ApplyUpdate возвращать err (nil снимает ошибку)
func (s *AvailabilityStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeErr = err
}

// Record текущая запись (нулевая, если нет)
func (s *AvailabilityStore) Record(spotID string) domain.ParkingAvailability {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.records[spotID]
	return *a.Clone()
}

func (s *AvailabilityStore) snapshot() func() {
	s.mu.Lock()
	saved := make(map[string]domain.ParkingAvailability, len(s.records))
	for k, v := range s.records {
		saved[k] = *v.Clone()
	}
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		s.records = saved
		s.mu.Unlock()
	}
}
