package availability_ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/service/availability"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/ws/availability
// Query params: spotId (optional); без него - все парковки
// Подписка отменяется при разрыве соединения
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("GET /ws/availability - Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Читаем, чтобы обработать pong и заметить закрытие со стороны клиента
	go func() {
		defer cancel()
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Warn("GET /ws/availability - Read error: %v", err)
				}
				return
			}
		}
	}()

	if spotID := r.URL.Query().Get("spotId"); spotID != "" {
		h.logger.Info("GET /ws/availability - Client subscribed: spot_id=%s", spotID)
		sub := h.service.SubscribeOne(ctx, spotID)
		pump(ctx, conn, sub, func(v *domain.ParkingAvailability) Message { return spotMessage(spotID, v) })
	} else {
		h.logger.Info("GET /ws/availability - Client subscribed to all spots")
		sub := h.service.SubscribeAll(ctx)
		pump(ctx, conn, sub, allMessage)
	}

	h.logger.Info("GET /ws/availability - Client disconnected")
}

// pump пишет значения подписки в соединение до отмены ctx или ошибки записи
func pump[T any](ctx context.Context, conn *websocket.Conn, sub *availability.Subscription[T], encode func(T) Message) {
	defer sub.Cancel()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return

		case v, ok := <-sub.C():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(encode(v)); err != nil {
				return
			}

		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
