package changefeed

import (
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
)

const pingInterval = 90 * time.Second

// Event уведомление об изменении доступности
// SpotID пустой при Resync (после переподключения изменения могли быть пропущены)
type Event struct {
	SpotID string
	Err    error
	Resync bool
}

// Config параметры подключения слушателя
type Config struct {
	DSN                  string
	Channel              string
	MinReconnectInterval time.Duration
	MaxReconnectInterval time.Duration
}

// Feed раздаёт уведомления LISTEN/NOTIFY подписчикам
type Feed struct {
	listener Listener
	channel  string
	logger   Logger

	mu       sync.Mutex
	handlers map[uint64]func(Event)
	nextID   uint64

	started   bool
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New создает фид поверх *pq.Listener
func New(cfg Config, logger Logger) *Feed {
	f := newFeed(cfg.Channel, logger)
	f.listener = pq.NewListener(cfg.DSN, cfg.MinReconnectInterval, cfg.MaxReconnectInterval, f.onListenerEvent)
	return f
}

// NewWithListener создает фид поверх произвольного слушателя
func NewWithListener(listener Listener, channel string, logger Logger) *Feed {
	f := newFeed(channel, logger)
	f.listener = listener
	return f
}

func newFeed(channel string, logger Logger) *Feed {
	return &Feed{
		channel:  channel,
		logger:   logger,
		handlers: make(map[uint64]func(Event)),
		done:     make(chan struct{}),
	}
}

// Start подписывается на канал и запускает цикл раздачи
func (f *Feed) Start() error {
	select {
	case <-f.done:
		return ErrClosed
	default:
	}

	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return nil
	}
	f.started = true
	f.mu.Unlock()

	if err := f.listener.Listen(f.channel); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrListen, f.channel, err)
	}

	f.wg.Add(1)
	go f.loop()

	f.logger.Info("Changefeed: listening channel %s", f.channel)
	return nil
}

// Subscribe регистрирует обработчик событий; возвращает функцию отписки
// Обработчик вызывается из цикла фида и не должен блокироваться
func (f *Feed) Subscribe(handler func(Event)) (unsubscribe func()) {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	f.handlers[id] = handler
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.handlers, id)
			f.mu.Unlock()
		})
	}
}

// Close останавливает цикл и закрывает слушателя
func (f *Feed) Close() error {
	var err error
	f.closeOnce.Do(func() {
		close(f.done)
		f.wg.Wait()
		err = f.listener.Close()
	})
	return err
}

func (f *Feed) loop() {
	defer f.wg.Done()

	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	notifications := f.listener.NotificationChannel()
	for {
		select {
		case <-f.done:
			return
		case n, ok := <-notifications:
			if !ok {
				f.dispatch(Event{Err: ErrConnection})
				return
			}
			f.dispatch(toEvent(n))
		case <-ticker.C:
			go func() {
				if err := f.listener.Ping(); err != nil {
					f.logger.Warn("Changefeed: ping failed: %v", err)
				}
			}()
		}
	}
}

// toEvent nil-уведомление pq присылает после переподключения
func toEvent(n *pq.Notification) Event {
	if n == nil {
		return Event{Resync: true}
	}
	return Event{SpotID: n.Extra}
}

func (f *Feed) dispatch(event Event) {
	f.mu.Lock()
	handlers := make([]func(Event), 0, len(f.handlers))
	for _, h := range f.handlers {
		handlers = append(handlers, h)
	}
	f.mu.Unlock()

	for _, h := range handlers {
		h(event)
	}
}

func (f *Feed) onListenerEvent(event pq.ListenerEventType, err error) {
	switch event {
	case pq.ListenerEventConnectionAttemptFailed, pq.ListenerEventDisconnected:
		f.logger.Error("Changefeed: listener connection lost: %v", err)
		f.dispatch(Event{Err: fmt.Errorf("%w: %v", ErrConnection, err)})
	case pq.ListenerEventReconnected:
		f.logger.Warn("Changefeed: listener reconnected")
	}
}
