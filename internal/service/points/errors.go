package points

import "errors"

var (
	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("points.service: user not found")

	// ErrAccessDenied возвращается, когда актор запрашивает чужой баланс
	ErrAccessDenied = errors.New("points.service: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("points.service: internal error")
)
