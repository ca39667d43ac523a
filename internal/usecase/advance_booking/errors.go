package advance_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("advance_booking: booking not found")

	// ErrFreelancerNotFound возвращается, когда назначаемый фрилансер не найден
	ErrFreelancerNotFound = errors.New("advance_booking: freelancer not found")

	// ErrNotAFreelancer возвращается, когда назначаемый пользователь не фрилансер
	ErrNotAFreelancer = errors.New("advance_booking: assignee is not a freelancer")

	// ErrInvalidTransition возвращается, когда переход недопустим из текущего статуса
	ErrInvalidTransition = errors.New("advance_booking: invalid status transition")

	// ErrUnauthorized возвращается, когда актор не вправе выполнить действие
	ErrUnauthorized = errors.New("advance_booking: actor not permitted for this action")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("advance_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("advance_booking: internal error")
)
