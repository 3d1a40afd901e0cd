package projector

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Projector объединяет каталог с живыми счетчиками доступности
// Собственного состояния в хранилище нет: снимок в памяти носит справочный характер
type Projector struct {
	catalogClient CatalogClient
	availability  AvailabilityService
	logger        Logger

	mu      sync.RWMutex
	catalog []domain.ParkingSpot
	records map[string]domain.ParkingAvailability
	merged  []domain.ParkingSpot
	index   map[string]int

	watchersMu sync.Mutex
	watchers   map[uint64]chan []domain.ParkingSpot
	nextID     uint64
}

// New создает проектор
func New(catalogClient CatalogClient, availabilityService AvailabilityService, logger Logger) *Projector {
	return &Projector{
		catalogClient: catalogClient,
		availability:  availabilityService,
		logger:        logger,
		records:       make(map[string]domain.ParkingAvailability),
		index:         make(map[string]int),
		watchers:      make(map[uint64]chan []domain.ParkingSpot),
	}
}

// LoadCatalog загружает каталог и создает записи доступности для новых парковок
func (p *Projector) LoadCatalog(ctx context.Context) error {
	spots, err := p.catalogClient.GetParkingSpots(ctx)
	if err != nil {
		p.logger.Error("LoadCatalog: failed to fetch catalog: %v", err)
		return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	p.mu.Lock()
	p.catalog = spots
	p.recomputeLocked()
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.publish(snapshot)

	created, err := p.availability.InitializeMissing(ctx, spots)
	if err != nil {
		// Без записей счетчики показываются полными, бронирование пропустит декремент
		p.logger.Warn("LoadCatalog: failed to initialize availability: %v", err)
		return nil
	}

	p.logger.Info("LoadCatalog: %d parking spots loaded, %d availability records created", len(spots), created)
	return nil
}

// Run применяет снимки доступности, пока не отменен ctx
func (p *Projector) Run(ctx context.Context) error {
	sub := p.availability.SubscribeAll(ctx)
	defer sub.Cancel()

	for {
		select {
		case <-ctx.Done():
			return nil
		case records, ok := <-sub.C():
			if !ok {
				return nil
			}
			p.apply(records)
		}
	}
}

// Snapshot последний объединенный список
func (p *Projector) Snapshot() []domain.ParkingSpot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked()
}

// Spot одна парковка из последнего снимка
func (p *Projector) Spot(id string) (domain.ParkingSpot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	i, ok := p.index[id]
	if !ok {
		return domain.ParkingSpot{}, false
	}
	return p.merged[i], true
}

// NearLocation парковки в радиусе от точки, ближайшие первыми
func (p *Projector) NearLocation(lat, lon, radiusKm float64) []NearbySpot {
	if radiusKm <= 0 {
		radiusKm = domain.DefaultSearchKm
	}
	return nearest(p.Snapshot(), lat, lon, radiusKm)
}

// Subscribe поток объединенных списков; первый элемент - текущий снимок
// Медленный читатель получает только последний список
func (p *Projector) Subscribe() (<-chan []domain.ParkingSpot, func()) {
	ch := make(chan []domain.ParkingSpot, 1)

	p.watchersMu.Lock()
	id := p.nextID
	p.nextID++
	p.watchers[id] = ch
	ch <- p.Snapshot()
	p.watchersMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			p.watchersMu.Lock()
			delete(p.watchers, id)
			close(ch)
			p.watchersMu.Unlock()
		})
	}

	return ch, cancel
}

func (p *Projector) apply(records map[string]domain.ParkingAvailability) {
	p.mu.Lock()
	p.records = records
	p.recomputeLocked()
	snapshot := p.snapshotLocked()
	p.mu.Unlock()

	p.publish(snapshot)
}

func (p *Projector) recomputeLocked() {
	p.merged = mergeAll(p.catalog, p.records)
	p.index = make(map[string]int, len(p.merged))
	for i, s := range p.merged {
		p.index[s.ID] = i
	}
}

func (p *Projector) snapshotLocked() []domain.ParkingSpot {
	out := make([]domain.ParkingSpot, len(p.merged))
	copy(out, p.merged)
	return out
}

func (p *Projector) publish(snapshot []domain.ParkingSpot) {
	p.watchersMu.Lock()
	defer p.watchersMu.Unlock()

	for _, ch := range p.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}
