package get_quote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	getQuote "github.com/m04kA/KMP-BookingService/internal/usecase/get_quote"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidRedeem    = "некорректное значение redeem"
	msgServiceNotFound  = "услуга не найдена"
	msgUserNotFound     = "пользователь не найден"
	msgInvalidInput     = "некорректные входные данные"
)

type Handler struct {
	useCase GetQuoteUseCase
	logger  Logger
}

func NewHandler(useCase GetQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/quote?serviceId=...&redeem=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /quote - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	redeem := false
	if raw := query.Get("redeem"); raw != "" {
		redeem, err = strconv.ParseBool(raw)
		if err != nil {
			h.logger.Warn("GET /quote - Invalid redeem flag: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRedeem)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &getQuote.Request{
		Actor:     actor,
		ServiceID: serviceID,
		Redeem:    redeem,
	})
	if err != nil {
		switch {
		case errors.Is(err, getQuote.ErrServiceNotFound):
			h.logger.Warn("GET /quote - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getQuote.ErrUserNotFound):
			h.logger.Warn("GET /quote - User not found: user_id=%d", actor.UserID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, getQuote.ErrInvalidInput):
			h.logger.Warn("GET /quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /quote - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
