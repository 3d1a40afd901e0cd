package changefeed

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeListener struct {
	ch        chan *pq.Notification
	listenErr error
	listened  []string
	closed    bool
}

func newFakeListener() *fakeListener {
	return &fakeListener{ch: make(chan *pq.Notification, 8)}
}

func (l *fakeListener) Listen(channel string) error {
	l.listened = append(l.listened, channel)
	return l.listenErr
}
func (l *fakeListener) NotificationChannel() <-chan *pq.Notification { return l.ch }
func (l *fakeListener) Ping() error                                  { return nil }
func (l *fakeListener) Close() error {
	l.closed = true
	return nil
}

type recorder struct {
	mu     sync.Mutex
	events []Event
	got    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{got: make(chan struct{}, 16)}
}

func (r *recorder) handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	r.got <- struct{}{}
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.got:
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func (r *recorder) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func TestFeed_DispatchesNotifications(t *testing.T) {
	l := newFakeListener()
	feed := NewWithListener(l, "parking_availability_changed", nopLogger{})
	require.NoError(t, feed.Start())
	defer feed.Close()

	assert.Equal(t, []string{"parking_availability_changed"}, l.listened)

	rec := newRecorder()
	feed.Subscribe(rec.handle)

	l.ch <- &pq.Notification{Channel: "parking_availability_changed", Extra: "spot-1"}
	rec.wait(t)
	l.ch <- nil
	rec.wait(t)

	events := rec.snapshot()
	require.Len(t, events, 2)
	assert.Equal(t, Event{SpotID: "spot-1"}, events[0])
	assert.Equal(t, Event{Resync: true}, events[1])
}

func TestFeed_UnsubscribeStopsDelivery(t *testing.T) {
	l := newFakeListener()
	feed := NewWithListener(l, "ch", nopLogger{})
	require.NoError(t, feed.Start())
	defer feed.Close()

	first := newRecorder()
	second := newRecorder()
	unsubscribe := feed.Subscribe(first.handle)
	feed.Subscribe(second.handle)

	unsubscribe()
	unsubscribe()

	l.ch <- &pq.Notification{Extra: "spot-2"}
	second.wait(t)

	assert.Empty(t, first.snapshot())
	assert.Len(t, second.snapshot(), 1)
}

func TestFeed_ConnectionLossIsAnErrorEvent(t *testing.T) {
	feed := NewWithListener(newFakeListener(), "ch", nopLogger{})
	rec := newRecorder()
	feed.Subscribe(rec.handle)

	feed.onListenerEvent(pq.ListenerEventDisconnected, errors.New("connection reset"))
	rec.wait(t)

	events := rec.snapshot()
	require.Len(t, events, 1)
	assert.ErrorIs(t, events[0].Err, ErrConnection)
}

func TestFeed_StartErrors(t *testing.T) {
	l := newFakeListener()
	l.listenErr = errors.New("boom")
	feed := NewWithListener(l, "ch", nopLogger{})
	assert.ErrorIs(t, feed.Start(), ErrListen)

	closed := NewWithListener(newFakeListener(), "ch", nopLogger{})
	require.NoError(t, closed.Close())
	assert.ErrorIs(t, closed.Start(), ErrClosed)
}

func TestFeed_CloseClosesListener(t *testing.T) {
	l := newFakeListener()
	feed := NewWithListener(l, "ch", nopLogger{})
	require.NoError(t, feed.Start())
	require.NoError(t, feed.Close())
	require.NoError(t, feed.Close())
	assert.True(t, l.closed)
}
