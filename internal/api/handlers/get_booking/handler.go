package get_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings"
)

const (
	msgNotFound  = "бронирование не найдено"
	msgForbidden = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/{reference}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	reference := mux.Vars(r)["reference"]

	booking, err := h.service.GetByReference(r.Context(), reference, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{reference} - Not found: reference=%s", reference)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{reference} - Access denied: reference=%s, user_id=%d", reference, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{reference} - Failed: reference=%s, error=%v", reference, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
