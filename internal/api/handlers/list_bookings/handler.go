package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings"
	"github.com/m04kA/KMP-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "некорректные параметры фильтрации"
	msgForbidden     = "просмотр всех бронирований доступен только координаторам"
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

// Handle GET /api/v1/bookings?status=...&customerId=...&freelancerId=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	req, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.List(r.Context(), req, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings - Access denied: user_id=%d role=%s", actor.UserID, actor.Role)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// parseQuery разбирает query-параметры фильтрации
func parseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("customerId"); raw != "" {
		customerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.CustomerID = &customerID
	}

	if raw := query.Get("freelancerId"); raw != "" {
		freelancerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.FreelancerID = &freelancerID
	}

	return req, nil
}
