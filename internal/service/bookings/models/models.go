package models

import (
	"errors"
	"time"

	"github.com/m04kA/KMP-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос истории бронирований клиента
type GetUserBookingsRequest struct {
	CustomerID int64
	Status     *string
}

// GetFreelancerBookingsRequest запрос назначенных фрилансеру заказов
type GetFreelancerBookingsRequest struct {
	FreelancerID int64
	Status       *string
}

// ListBookingsRequest запрос списка бронирований для staff/admin
type ListBookingsRequest struct {
	CustomerID   *int64
	FreelancerID *int64
	Status       *string
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CustomerID:   r.CustomerID,
		FreelancerID: r.FreelancerID,
	}

	if r.Status != nil {
		status, ok := domain.ParseStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	Reference    string `json:"reference"`
	CustomerID   int64  `json:"customerId"`
	ServiceID    int64  `json:"serviceId"`
	FreelancerID *int64 `json:"freelancerId,omitempty"`
	Status       string `json:"status"`
	MeetingType  string `json:"meetingType"`

	LocationAddress *string `json:"locationAddress,omitempty"`
	VirtualLink     *string `json:"virtualLink,omitempty"`

	ScheduledAt time.Time `json:"scheduledAt"`

	// Денормализованные данные услуги
	ServiceTitle   string  `json:"serviceTitle"`
	BasePrice      float64 `json:"basePrice"`
	Discount       float64 `json:"discount"`
	FinalPrice     float64 `json:"finalPrice"`
	RedeemedPoints int64   `json:"redeemedPoints"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		Reference:          b.Reference,
		CustomerID:         b.CustomerID,
		ServiceID:          b.ServiceID,
		FreelancerID:       b.FreelancerID,
		Status:             string(b.Status),
		MeetingType:        string(b.MeetingType),
		LocationAddress:    b.LocationAddress,
		VirtualLink:        b.VirtualLink,
		ScheduledAt:        b.ScheduledAt,
		ServiceTitle:       b.ServiceTitle,
		BasePrice:          b.BasePrice.Rands(),
		Discount:           b.Discount.Rands(),
		FinalPrice:         b.FinalPrice.Rands(),
		RedeemedPoints:     b.RedeemedPoints,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, len(bookings)),
	}

	for i, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings[i] = *bookingResp
		}
	}

	return resp
}
