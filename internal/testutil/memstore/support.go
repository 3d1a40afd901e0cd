package memstore

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/changefeed"
)

// NopLogger логгер, ничего не пишущий
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// Clock управляемые часы
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// NopMetrics метрики-заглушка
type NopMetrics struct{}

func (NopMetrics) IncAvailabilityTx(string, string) {}
func (NopMetrics) AddSubscriptions(string, int)     {}
func (NopMetrics) IncBookingsCreated(string)        {}

// NopFeed фид без событий
type NopFeed struct{}

func (NopFeed) Subscribe(func(changefeed.Event)) func() { return func() {} }

// Feed фид, события которого отправляются вручную через Emit
type Feed struct {
	mu       sync.Mutex
	handlers map[int]func(changefeed.Event)
	next     int
}

func NewFeed() *Feed {
	return &Feed{handlers: map[int]func(changefeed.Event){}}
}

func (f *Feed) Subscribe(handler func(changefeed.Event)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.next
	f.next++
	f.handlers[id] = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.handlers, id)
	}
}

// Emit синхронно доставляет событие всем подписчикам
func (f *Feed) Emit(e changefeed.Event) {
	f.mu.Lock()
	handlers := make([]func(changefeed.Event), 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

// Size количество активных подписчиков
func (f *Feed) Size() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.handlers)
}

// Catalog каталог парковок в памяти
type Catalog map[string]domain.ParkingSpot

func (c Catalog) Spot(id string) (domain.ParkingSpot, bool) {
	spot, ok := c[id]
	return spot, ok
}
