package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("catalogservice: service not found")

	// ErrInvalidResponse возвращается при некорректном ответе каталога
	ErrInvalidResponse = errors.New("catalogservice: invalid response")

	// ErrInternal возвращается при сетевых и прочих внутренних ошибках
	ErrInternal = errors.New("catalogservice: internal error")
)
