package advance_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

// Request модель запроса на изменение статуса бронирования
type Request struct {
	Reference string       // Reference-код бронирования
	Actor     domain.Actor // Идентичность и роль из identity-коллаборатора
	Action    string       // "assign" | "start" | "complete" | "cancel"

	FreelancerID *int64  // Обязателен для assign
	Reason       *string // Причина отмены (только cancel)
}

// validate проверяет статические поля запроса и возвращает распознанное действие
func (r *Request) validate() (domain.Action, error) {
	if r.Actor.UserID <= 0 {
		return "", fmt.Errorf("%w: actor userID must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Reference) == "" {
		return "", fmt.Errorf("%w: reference is required", ErrInvalidInput)
	}

	action, ok := domain.ParseAction(r.Action)
	if !ok {
		return "", fmt.Errorf("%w: unknown action %q", ErrInvalidInput, r.Action)
	}

	if action == domain.ActionAssign && (r.FreelancerID == nil || *r.FreelancerID <= 0) {
		return "", fmt.Errorf("%w: freelancerId is required for assign", ErrInvalidInput)
	}

	if r.Reason != nil && len(*r.Reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	return action, nil
}

func (r *Request) cancellationReason() string {
	if r.Reason == nil {
		return ""
	}
	return strings.TrimSpace(*r.Reason)
}
