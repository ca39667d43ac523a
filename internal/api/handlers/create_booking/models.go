package create_booking

import (
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
	createBooking "github.com/m04kA/KMP-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	ServiceID       int64   `json:"serviceId"`
	MeetingType     string  `json:"meetingType"` // "physical" | "virtual"
	LocationAddress *string `json:"locationAddress,omitempty"`
	VirtualLink     *string `json:"virtualLink,omitempty"`
	ScheduledAt     string  `json:"scheduledAt"` // RFC 3339, например "2026-02-15T14:00:00Z"
	RedeemPoints    bool    `json:"redeemPoints"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Reference       string  `json:"reference"`
	CustomerID      int64   `json:"customerId"`
	ServiceID       int64   `json:"serviceId"`
	Status          string  `json:"status"`
	MeetingType     string  `json:"meetingType"`
	LocationAddress *string `json:"locationAddress,omitempty"`
	VirtualLink     *string `json:"virtualLink,omitempty"`
	ScheduledAt     string  `json:"scheduledAt"`
	ServiceTitle    string  `json:"serviceTitle"`
	BasePrice       float64 `json:"basePrice"`
	Discount        float64 `json:"discount"`
	FinalPrice      float64 `json:"finalPrice"`
	RedeemedPoints  int64   `json:"redeemedPoints"`
	PointsBalance   int64   `json:"pointsBalance"`
	CreatedAt       string  `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	scheduledAt, err := time.Parse(time.RFC3339, r.ScheduledAt)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		Actor:        actor,
		ServiceID:    r.ServiceID,
		MeetingType:  r.MeetingType,
		Location:     r.LocationAddress,
		VirtualLink:  r.VirtualLink,
		ScheduledAt:  scheduledAt,
		RedeemPoints: r.RedeemPoints,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		Reference:       resp.Reference,
		CustomerID:      resp.CustomerID,
		ServiceID:       resp.ServiceID,
		Status:          resp.Status,
		MeetingType:     resp.MeetingType,
		LocationAddress: resp.Location,
		VirtualLink:     resp.VirtualLink,
		ScheduledAt:     resp.ScheduledAt.Format(time.RFC3339),
		ServiceTitle:    resp.ServiceTitle,
		BasePrice:       resp.BasePrice,
		Discount:        resp.Discount,
		FinalPrice:      resp.FinalPrice,
		RedeemedPoints:  resp.RedeemedPoints,
		PointsBalance:   resp.PointsBalance,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
