package get_quote

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("get_quote: service not found")

	// ErrUserNotFound возвращается, когда профиль пользователя не найден
	ErrUserNotFound = errors.New("get_quote: user not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_quote: internal error")
)
