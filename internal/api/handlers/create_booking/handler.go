package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/KMP-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается RFC 3339"
	msgServiceNotFound    = "услуга не найдена"
	msgUserNotFound       = "пользователь не найден"
	msgNotCustomer        = "бронирование может создать только клиент"
	msgInvalidMeeting     = "некорректный тип встречи"
	msgLocationRequired   = "для очной встречи требуется адрес"
	msgAmbiguousPayload   = "укажите либо адрес, либо ссылку на встречу"
	msgScheduleInPast     = "дата сессии должна быть в будущем"
	msgInsufficientPoints = "недостаточно баллов"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse scheduledAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found: user_id=%d", actor.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrNotCustomer):
			h.logger.Warn("POST /bookings - Not a customer: user_id=%d role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgNotCustomer)

		case errors.Is(err, createBooking.ErrInvalidMeetingType):
			h.logger.Warn("POST /bookings - Invalid meeting type: %s", req.MeetingType)
			handlers.RespondBadRequest(w, msgInvalidMeeting)

		case errors.Is(err, createBooking.ErrLocationRequired):
			h.logger.Warn("POST /bookings - Location required: user_id=%d, service_id=%d", actor.UserID, req.ServiceID)
			handlers.RespondBadRequest(w, msgLocationRequired)

		case errors.Is(err, createBooking.ErrAmbiguousMeetingPayload):
			h.logger.Warn("POST /bookings - Ambiguous meeting payload: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgAmbiguousPayload)

		case errors.Is(err, createBooking.ErrScheduleInPast):
			h.logger.Warn("POST /bookings - Schedule in past: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgScheduleInPast)

		case errors.Is(err, createBooking.ErrInsufficientPoints):
			h.logger.Warn("POST /bookings - Insufficient points: user_id=%d", actor.UserID)
			handlers.RespondConflict(w, msgInsufficientPoints)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d: %v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: reference=%s, user_id=%d", result.Reference, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
