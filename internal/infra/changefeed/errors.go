package changefeed

import "errors"

var (
	// ErrListen возвращается, если не удалось подписаться на канал
	ErrListen = errors.New("changefeed: failed to listen channel")

	// ErrConnection сигнализирует о потере соединения слушателя
	ErrConnection = errors.New("changefeed: listener connection failed")

	// ErrClosed возвращается при повторном запуске закрытого фида
	ErrClosed = errors.New("changefeed: feed closed")
)
