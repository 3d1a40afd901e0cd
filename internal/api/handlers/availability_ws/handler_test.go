package availability_ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
	"github.com/m04kA/SMC-ParkingService/internal/testutil/memstore"
)

func newTestServer(t *testing.T) (*httptest.Server, *availability.Service) {
	t.Helper()

	store := memstore.NewAvailabilityStore()
	clock := memstore.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	svc := availability.NewService(store, memstore.NewTxManager(store), memstore.NopFeed{}, memstore.NopMetrics{}, clock, memstore.NopLogger{})

	require.NoError(t, svc.Initialize(context.Background(), domain.ParkingSpot{
		ID:                    "ps_001",
		TotalSpotsFourWheeler: 7,
		Floors:                []domain.Floor{{FloorNumber: 1, TotalSpots: 7}},
	}))

	srv := httptest.NewServer(http.HandlerFunc(NewHandler(svc, memstore.NopLogger{}).Handle))
	t.Cleanup(srv.Close)
	return srv, svc
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestHandler_SubscribeOne(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?spotId=ps_001")

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, messageTypeSpot, msg.Type)
	assert.Equal(t, "ps_001", msg.SpotID)
	require.NotNil(t, msg.Availability)
	assert.Equal(t, 7, msg.Availability.AvailableFourWheeler)
	assert.Equal(t, 7, msg.Availability.FloorAvailability["1"])
	assert.False(t, msg.Unknown)
}

func TestHandler_SubscribeOne_UnknownSpot(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "?spotId=ps_404")

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))

	assert.True(t, msg.Unknown)
	assert.Nil(t, msg.Availability)
}

func TestHandler_SubscribeAll(t *testing.T) {
	srv, _ := newTestServer(t)
	conn := dial(t, srv, "")

	var msg Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))

	assert.Equal(t, messageTypeAll, msg.Type)
	require.Contains(t, msg.All, "ps_001")
	assert.Equal(t, 7, msg.All["ps_001"].AvailableFourWheeler)
}
