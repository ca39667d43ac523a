package cancel_booking

import (
	"github.com/m04kA/KMP-BookingService/internal/domain"
	advanceBooking "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CancelBookingRequest) ToUseCaseRequest(reference string, actor domain.Actor) *advanceBooking.Request {
	return &advanceBooking.Request{
		Reference: reference,
		Actor:     actor,
		Action:    string(domain.ActionCancel),
		Reason:    r.Reason,
	}
}
