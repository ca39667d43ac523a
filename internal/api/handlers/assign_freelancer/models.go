package assign_freelancer

import (
	"github.com/m04kA/KMP-BookingService/internal/domain"
	advanceBooking "github.com/m04kA/KMP-BookingService/internal/usecase/advance_booking"
)

// AssignFreelancerRequest HTTP request model
type AssignFreelancerRequest struct {
	FreelancerID int64 `json:"freelancerId"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AssignFreelancerRequest) ToUseCaseRequest(reference string, actor domain.Actor) *advanceBooking.Request {
	return &advanceBooking.Request{
		Reference:    reference,
		Actor:        actor,
		Action:       string(domain.ActionAssign),
		FreelancerID: &r.FreelancerID,
	}
}
