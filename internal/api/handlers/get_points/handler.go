package get_points

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KMP-BookingService/internal/api/handlers"
	"github.com/m04kA/KMP-BookingService/internal/api/middleware"
	"github.com/m04kA/KMP-BookingService/internal/service/points"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgUserNotFound  = "пользователь не найден"
	msgForbidden     = "доступ к чужому балансу запрещен"
)

type Handler struct {
	service PointsService
	logger  Logger
}

func NewHandler(service PointsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/points
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "не удалось определить актора")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/points - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	result, err := h.service.GetPoints(r.Context(), userID, actor)
	if err != nil {
		switch {
		case errors.Is(err, points.ErrUserNotFound):
			h.logger.Warn("GET /users/{userId}/points - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, points.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/points - Access denied: user_id=%d, actor=%d", userID, actor.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /users/{userId}/points - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
