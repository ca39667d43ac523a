package advance_booking

import (
	"github.com/m04kA/KMP-BookingService/internal/domain"
	advanceBooking "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
)

// AdvanceBookingRequest HTTP request model
type AdvanceBookingRequest struct {
	Action string `json:"action"` // "start" | "complete"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AdvanceBookingRequest) ToUseCaseRequest(reference string, actor domain.Actor) *advanceBooking.Request {
	return &advanceBooking.Request{
		Reference: reference,
		Actor:     actor,
		Action:    r.Action,
	}
}
