package catalog

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalog client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalog client: invalid response")

	// ErrNotFound возвращается, если файл каталога не найден
	ErrNotFound = errors.New("catalog client: resource not found")
)
