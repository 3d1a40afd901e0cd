package projector

import "errors"

var (
	// ErrCatalogUnavailable возвращается, если каталог не удалось загрузить
	ErrCatalogUnavailable = errors.New("projector: catalog unavailable")
)
