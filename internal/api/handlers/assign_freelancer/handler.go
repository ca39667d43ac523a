package assign_freelancer

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
	msgBookingNotFound    = "бронирование не найдено"
	msgFreelancerNotFound = "фрилансер не найден"
	msgNotAFreelancer     = "назначаемый пользователь не является фрилансером"
	msgForbidden          = "назначать исполнителя может только координатор"
	msgInvalidTransition  = "назначение недоступно из текущего статуса"
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

// Handle POST /api/v1/bookings/{reference}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	reference := mux.Vars(r)["reference"]

	var req AssignFreelancerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{reference}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(reference, actor))
	if err != nil {
		switch {
		case errors.Is(err, advanceBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{reference}/assign - Booking not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, advanceBooking.ErrFreelancerNotFound):
			h.logger.Warn("POST /bookings/{reference}/assign - Freelancer not found: freelancer_id=%d", req.FreelancerID)
			handlers.RespondNotFound(w, msgFreelancerNotFound)

		case errors.Is(err, advanceBooking.ErrNotAFreelancer):
			h.logger.Warn("POST /bookings/{reference}/assign - Not a freelancer: freelancer_id=%d", req.FreelancerID)
			handlers.RespondBadRequest(w, msgNotAFreelancer)

		case errors.Is(err, advanceBooking.ErrUnauthorized):
			h.logger.Warn("POST /bookings/{reference}/assign - Unauthorized: reference=%s, user_id=%d", reference, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, advanceBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{reference}/assign - Invalid transition: reference=%s", reference)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, advanceBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{reference}/assign - Invalid input: reference=%s: %v", reference, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings/{reference}/assign - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{reference}/assign - Freelancer assigned: reference=%s, freelancer_id=%d", reference, req.FreelancerID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainBooking(booking))
}
