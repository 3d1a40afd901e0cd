package availability

import (
	"context"
	"errors"
	"sync"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/changefeed"
)

const (
	subscriptionKindOne = "one"
	subscriptionKindAll = "all"
)

// Subscription поток актуальных значений
// Хранит только последнее непрочитанное значение: медленный читатель получает свежее, а не все промежуточные
type Subscription[T any] struct {
	ch     chan T
	mu     sync.Mutex
	closed bool

	once    sync.Once
	stop    context.CancelFunc
	detach  func()
	onClose func()
}

func newSubscription[T any]() *Subscription[T] {
	return &Subscription[T]{ch: make(chan T, 1)}
}

// C канал значений; закрывается после Cancel
func (s *Subscription[T]) C() <-chan T {
	return s.ch
}

// Cancel отписывает от фида; после возврата значений больше не будет
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()

		if s.detach != nil {
			s.detach()
		}
		if s.stop != nil {
			s.stop()
		}
		if s.onClose != nil {
			s.onClose()
		}
	})
}

func (s *Subscription[T]) deliver(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	// Вытесняем непрочитанное значение
	select {
	case <-s.ch:
	default:
	}
	s.ch <- v
}

// refreshSignal сигнал на перечитывание; errPending - последнее событие было ошибкой
type refreshSignal struct {
	mu         sync.Mutex
	errPending bool
	ch         chan struct{}
}

func newRefreshSignal() *refreshSignal {
	return &refreshSignal{ch: make(chan struct{}, 1)}
}

func (r *refreshSignal) notify(failed bool) {
	r.mu.Lock()
	r.errPending = failed
	r.mu.Unlock()

	select {
	case r.ch <- struct{}{}:
	default:
	}
}

func (r *refreshSignal) take() (failed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	failed = r.errPending
	r.errPending = false
	return failed
}

// SubscribeOne поток записи одной парковки
// nil означает "доступность неизвестна": записи нет или чтение/фид упали
func (s *Service) SubscribeOne(ctx context.Context, spotID string) *Subscription[*domain.ParkingAvailability] {
	sub := newSubscription[*domain.ParkingAvailability]()

	read := func(ctx context.Context, failed bool) *domain.ParkingAvailability {
		if failed {
			return nil
		}
		a, err := s.Get(ctx, spotID)
		if err != nil {
			if !errors.Is(err, ErrNoAvailability) {
				s.logger.Warn("SubscribeOne: failed to read spot_id=%s: %v", spotID, err)
			}
			return nil
		}
		return a
	}

	match := func(e changefeed.Event) bool {
		return e.Resync || e.Err != nil || e.SpotID == spotID
	}

	start(ctx, s, sub, subscriptionKindOne, match, read)
	return sub
}

// SubscribeAll поток всех записей доступности по spot id
// Пустая карта означает "доступность неизвестна"
func (s *Service) SubscribeAll(ctx context.Context) *Subscription[map[string]domain.ParkingAvailability] {
	sub := newSubscription[map[string]domain.ParkingAvailability]()

	read := func(ctx context.Context, failed bool) map[string]domain.ParkingAvailability {
		if failed {
			return map[string]domain.ParkingAvailability{}
		}
		all, err := s.GetAll(ctx)
		if err != nil {
			s.logger.Warn("SubscribeAll: failed to read availability: %v", err)
			return map[string]domain.ParkingAvailability{}
		}
		return all
	}

	match := func(changefeed.Event) bool { return true }

	start(ctx, s, sub, subscriptionKindAll, match, read)
	return sub
}

// start подключает подписку к фиду и запускает цикл перечитывания
// Обработчик фида только ставит сигнал: чтение выполняется в горутине подписки
func start[T any](
	ctx context.Context,
	s *Service,
	sub *Subscription[T],
	kind string,
	match func(changefeed.Event) bool,
	read func(ctx context.Context, failed bool) T,
) {
	subCtx, stop := context.WithCancel(ctx)
	signal := newRefreshSignal()

	sub.stop = stop
	sub.detach = s.feed.Subscribe(func(e changefeed.Event) {
		if match(e) {
			signal.notify(e.Err != nil)
		}
	})
	sub.onClose = func() { s.metrics.AddSubscriptions(kind, -1) }
	s.metrics.AddSubscriptions(kind, 1)

	// Начальное значение
	signal.notify(false)

	go func() {
		for {
			select {
			case <-subCtx.Done():
				sub.Cancel()
				return
			case <-signal.ch:
				sub.deliver(read(subCtx, signal.take()))
			}
		}
	}()
}
