package cancel_booking

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
	msgForbidden          = "отмена недоступна для данного актора"
	msgInvalidTransition  = "бронирование нельзя отменить из текущего статуса"
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

// Handle PATCH /api/v1/bookings/{reference}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	reference := mux.Vars(r)["reference"]

	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{reference}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference, actor))
	if err != nil {
		switch {
		case errors.Is(err, advanceBooking.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, advanceBooking.ErrUnauthorized):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Unauthorized: reference=%s, user_id=%d", reference, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advanceBooking.ErrInvalidTransition):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Invalid transition: reference=%s", reference)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, advanceBooking.ErrInvalidInput):
			h.logger.Warn("PATCH /bookings/{reference}/cancel - Invalid input: reference=%s: %v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /bookings/{reference}/cancel - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{reference}/cancel - Booking cancelled: reference=%s, user_id=%d", reference, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
