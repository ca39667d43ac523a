package create_booking

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrUserNotFound возвращается, когда профиль клиента не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrNotCustomer возвращается, когда бронирование создает не клиент
	ErrNotCustomer = errors.New("create_booking: only customers can create bookings")

	// ErrInvalidMeetingType возвращается при неизвестном типе встречи
	ErrInvalidMeetingType = errors.New("create_booking: invalid meeting type")

	// ErrLocationRequired возвращается, когда для очной встречи не указан адрес
	ErrLocationRequired = errors.New("create_booking: location address is required for physical meetings")

	// ErrAmbiguousMeetingPayload возвращается, когда заполнены и адрес, и ссылка
	ErrAmbiguousMeetingPayload = errors.New("create_booking: booking must carry either a location or a virtual link, not both")

	// ErrScheduleInPast возвращается, когда дата сессии не в будущем
	ErrScheduleInPast = errors.New("create_booking: scheduled date must be in the future")

	// ErrInsufficientPoints возвращается, когда списание превышает баланс
	ErrInsufficientPoints = errors.New("create_booking: insufficient point balance")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
