package advance_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings/models"
	advanceBooking "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "действие доступно только назначенному исполнителю"
	msgInvalidTransition  = "действие недоступно из текущего статуса"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase AdvanceBookingUseCase
	logger  Logger
}

func NewHandler(useCase AdvanceBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{reference}/advance
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	reference := mux.Vars(r)["reference"]

	var req AdvanceBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{reference}/advance - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference, actor))
	if err != nil {
		switch {
		case errors.Is(err, advanceBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{reference}/advance - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, advanceBooking.ErrUnauthorized):
			h.logger.Warn("POST /bookings/{reference}/advance - Unauthorized: reference=%s, user_id=%d, action=%s", reference, actor.UserID, req.Action)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advanceBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{reference}/advance - Invalid transition: reference=%s, action=%s", reference, req.Action)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, advanceBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{reference}/advance - Invalid input: reference=%s: %v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{reference}/advance - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{reference}/advance - Status changed: reference=%s, action=%s, status=%s", reference, req.Action, booking.Status)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
